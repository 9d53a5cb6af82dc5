package dto

type FicharRequest struct {
	IDTrabajador int    `json:"id_trabajador" validate:"required,gt=0"`
	Tipo         string `json:"tipo"          validate:"required,oneof=entrada salida"`
}

// FichajeManualRequest lets a manager create or correct a clock record.
// Manual overrides are the only way to change a recorded entry time.
type FichajeManualRequest struct {
	IDTrabajador int     `json:"id_trabajador" validate:"required,gt=0"`
	Fecha        string  `json:"fecha"         validate:"required,datetime=2006-01-02"`
	HoraEntrada  *string `json:"hora_entrada"`
	HoraSalida   *string `json:"hora_salida"`
}

type FichajeResponse struct {
	IDFichaje    int     `json:"id_fichaje"`
	IDTrabajador int     `json:"id_trabajador"`
	Fecha        string  `json:"fecha"`
	HoraEntrada  *string `json:"hora_entrada"`
	HoraSalida   *string `json:"hora_salida"`
	Fuente       string  `json:"fuente"`
}
