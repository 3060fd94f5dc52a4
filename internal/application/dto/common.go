package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IDResponse respuesta con el ID de un recurso creado.
type IDResponse struct {
	ID int64 `json:"id"`
}
