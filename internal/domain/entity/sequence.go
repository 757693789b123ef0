package entity

import "strings"

// EntityType nombre del contador de secuencia de cada tipo de entidad.
type EntityType string

const (
	EntityUser           EntityType = "User"
	EntityProduct        EntityType = "Product"
	EntityTransaction    EntityType = "Transaction"
	EntityPreorder       EntityType = "Preorder"
	EntityTask           EntityType = "Task"
	EntityProductRequest EntityType = "ProductRequest"
	EntityProductLog     EntityType = "ProductLog"
)

var idPrefixes = map[EntityType]string{
	EntityUser:           "U",
	EntityProduct:        "P",
	EntityTransaction:    "TX",
	EntityPreorder:       "PO",
	EntityTask:           "T",
	EntityProductRequest: "PR",
	EntityProductLog:     "PL",
}

// Prefix devuelve el prefijo fijo de los IDs del tipo; false si el tipo no está registrado.
func (e EntityType) Prefix() (string, bool) {
	p, ok := idPrefixes[e]
	return p, ok
}

// IsAllocatedID indica si id tiene la forma que emite el asignador (prefijo + dígitos).
func (e EntityType) IsAllocatedID(id string) bool {
	p, ok := idPrefixes[e]
	if !ok || !strings.HasPrefix(id, p) || len(id) == len(p) {
		return false
	}
	for _, r := range id[len(p):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Sequence contador monotónico por tipo de entidad.
type Sequence struct {
	Name  EntityType
	Value int64
}
