package dto

type CrearTiendaRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=2,max=100"`
	Direccion string `json:"direccion" validate:"max=255"`
	IDJefe    *int   `json:"id_jefe"   validate:"omitempty,gt=0"`
}

type TiendaResponse struct {
	ID        int    `json:"id_tienda"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	IDJefe    *int   `json:"id_jefe"`
}
