package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	for _, ok := range []string{"ana@example.com", "a.b+c@mail.co"} {
		assert.True(t, IsEmail(ok), ok)
	}
	for _, bad := range []string{"", "ana", "ana@", "@x.com", "Ana <ana@x.com>", "ana@localhost"} {
		assert.False(t, IsEmail(bad), bad)
	}
}

func TestIsPhone(t *testing.T) {
	for _, ok := range []string{"7875551234", "(787) 555-1234", "+1 787.555.1234", "5551234"} {
		assert.True(t, IsPhone(ok), ok)
	}
	for _, bad := range []string{"", "123", "787-555-12a4", "1+7875551234", "1234567890123456"} {
		assert.False(t, IsPhone(bad), bad)
	}
}
