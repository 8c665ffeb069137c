package entity

import "time"

// Categorías de cliente.
const (
	CategoriaAltoRiesgo     = "Alto Riesgo"
	CategoriaAgenteRetencion = "Agente Retención"
)

// Cliente de la cartera comercial. RIF es único.
type Cliente struct {
	ID            string
	Nombre        string
	Telefono      string
	Email         string
	Direccion     string
	Municipio     string
	RIF           string
	Categorias    []string
	FechaRegistro time.Time
	UltimaCompra  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
