package entity

import "time"

// ProductRequest solicitud de un residente para incorporar un producto nuevo (solo se crea o elimina).
type ProductRequest struct {
	ID                 string
	UserID             string
	ProductName        string
	ProductDescription string
	CreatedAt          time.Time
}
