package model

const (
	DecisionLiberar        = "liberar"
	DecisionRetenerParcial = "retener_parcial"
	DecisionRetenerTotal   = "retener_total"
)

type CrearRentaRequest struct {
	IDArticulo  int64  `json:"id_articulo" validate:"required,gt=0"`
	FechaInicio string `json:"fecha_inicio" validate:"required"`
	FechaFin    string `json:"fecha_fin" validate:"required"`
	Modalidad   string `json:"modalidad" validate:"required,oneof=horas dias"`
}

type CancelarRequest struct {
	Motivo *string `json:"motivo"`
}

type IncidenteRequest struct {
	Descripcion string `json:"descripcion" validate:"required,min=5"`
}

type ResolverIncidenteRequest struct {
	Decision      string   `json:"decision" validate:"required,oneof=liberar retener_parcial retener_total"`
	MontoRetenido *float64 `json:"monto_retenido"`
	Nota          *string  `json:"nota"`
}

type CoordinarRequest struct {
	ModoEntrega                  *string  `json:"modo_entrega,omitempty" validate:"omitempty,oneof=arrendador neutral"`
	EntregaModo                  *string  `json:"entrega_modo,omitempty" validate:"omitempty,oneof=domicilio punto_entrega"`
	IDPuntoEntrega               *int64   `json:"id_punto_entrega,omitempty" validate:"omitempty,gt=0"`
	ZonaPublica                  *string  `json:"zona_publica,omitempty"`
	DireccionEntrega             *string  `json:"direccion_entrega,omitempty"`
	VentanasEntregaPropuestas    []string `json:"ventanas_entrega_propuestas,omitempty"`
	VentanasDevolucionPropuestas []string `json:"ventanas_devolucion_propuestas,omitempty"`
	Confirmar                    bool     `json:"confirmar,omitempty"`
}

type AceptarCoordinacionRequest struct {
	VentanaEntrega    string `json:"ventana_entrega" validate:"required"`
	VentanaDevolucion string `json:"ventana_devolucion" validate:"required"`
}

type OtpRequest struct {
	Codigo    string  `json:"codigo" validate:"required,len=6"`
	Checklist *string `json:"checklist"`
}

type CalificarRequest struct {
	Estrellas  int     `json:"estrellas" validate:"required,min=1,max=5"`
	Comentario *string `json:"comentario" validate:"omitempty,max=200"`
}

type ChatSendRequest struct {
	Mensaje string `json:"mensaje" validate:"required,max=240"`
}

type CrearArticuloRequest struct {
	Titulo            string   `json:"titulo" validate:"required"`
	Descripcion       string   `json:"descripcion" validate:"required"`
	IDCategoria       int64    `json:"id_categoria" validate:"required,gt=0"`
	UnidadPrecio      string   `json:"unidad_precio" validate:"required,oneof=por_hora por_dia"`
	PrecioRentaDia    *float64 `json:"precio_renta_dia" validate:"omitempty,gt=0"`
	PrecioRentaHora   *float64 `json:"precio_renta_hora" validate:"omitempty,gt=0"`
	DepositoGarantia  float64  `json:"deposito_garantia" validate:"gte=0"`
	Ciudad            string   `json:"ciudad" validate:"required"`
	UbicacionTexto    *string  `json:"ubicacion_texto"`
}
