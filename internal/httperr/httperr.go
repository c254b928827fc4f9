package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFoundJSON(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

var messages = map[string]string{
	"invalid_request":         "Datos inválidos.",
	"invalid_date":            "Fecha inválida.",
	"invalid_time":            "Hora inválida.",
	"invalid_year":            "Año inválido.",
	"invalid_month":           "Mes inválido.",
	"client_name_required":    "El nombre es obligatorio.",
	"client_phone_required":   "El teléfono es obligatorio.",
	"invalid_phone":           "Teléfono inválido.",
	"invalid_email":           "Correo electrónico inválido.",
	"service_required":        "Seleccione un servicio.",
	"invalid_price":           "Precio inválido.",
	"invalid_category":        "Categoría inválida.",
	"invalid_status":          "Estado inválido.",
	"invalid_payment_method":  "Método de pago inválido.",
	"invalid_image":           "Imagen inválida.",
	"payment_amount_mismatch": "El monto pagado no cubre el depósito.",
	"slot_unavailable":        "Ese horario ya no está disponible.",
	"slot_in_past":            "Ese horario ya pasó.",
	"date_not_found":          "Fecha no configurada en el calendario.",
	"booking_not_found":       "Cita no encontrada.",
	"service_not_found":       "Servicio no encontrado.",
	"image_not_found":         "Imagen no encontrada.",
	"application_not_found":   "Solicitud no encontrada.",
	"booking_not_pending":     "La cita no está pendiente de pago.",
	"booking_not_cancellable": "La cita ya fue confirmada y no puede cancelarse.",
	"mercadopago_disabled":    "Mercado Pago no está disponible.",
	"payment_gateway_error":   "Error con la pasarela de pago.",
	"storage_not_configured":  "El almacenamiento de imágenes no está configurado.",
	"persistence_error":       "Error de almacenamiento. Intente nuevamente.",
}

// FromError maps a use case error onto the HTTP response.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Error interno.")
		return
	}

	msg, ok := messages[be.Code]
	if !ok {
		msg = be.Code
	}

	switch be.Kind {
	case KindValidation, KindBusiness:
		Write(c, http.StatusBadRequest, be.Code, msg)
	case KindNotFound:
		Write(c, http.StatusNotFound, be.Code, msg)
	case KindSlotUnavailable, KindConflict:
		Write(c, http.StatusConflict, be.Code, msg)
	case KindPersistence:
		Write(c, http.StatusServiceUnavailable, be.Code, msg)
	default:
		Internal(c, "internal_error", "Error interno.")
	}
}
