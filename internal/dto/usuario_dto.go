package dto

// CrearUsuarioRequest creates a user. Password may be omitted: the user is
// created without a credential and completes the first-login flow later.
type CrearUsuarioRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Rol      string  `json:"rol"      validate:"required,oneof=trabajador encargado administrador"`
}

type UsuarioResponse struct {
	ID     int     `json:"id_usuario"`
	Nombre string  `json:"nombre"`
	Email  *string `json:"email"`
	Rol    string  `json:"rol"`
}

// CrearTrabajadorRequest enrolls an existing user as staff of a store.
type CrearTrabajadorRequest struct {
	IDUsuario int    `json:"id_usuario" validate:"required,gt=0"`
	IDTienda  int    `json:"id_tienda"  validate:"required,gt=0"`
	FechaAlta *string `json:"fecha_alta" validate:"omitempty,datetime=2006-01-02"`
}

// EmpleadoResponse is the worker row used by store listings and the weekly
// schedule (repository joins Trabajadores with Usuarios).
type EmpleadoResponse struct {
	IDTrabajador int     `json:"id_trabajador"`
	Nombre       string  `json:"nombre"`
	Email        *string `json:"email,omitempty"`
	Rol          string  `json:"rol,omitempty"`
}
