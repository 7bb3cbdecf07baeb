package model

// Response is the API envelope every success payload arrives in.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// ErrorPayload carries the structured codes some 403 responses attach.
type ErrorPayload struct {
	Code    string   `json:"code"`
	Missing []string `json:"missing,omitempty"`
}

// ErrorBody is the API error envelope.
type ErrorBody struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Payload *ErrorPayload `json:"payload,omitempty"`
}

type PuntoEntrega struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion,omitempty"`
}

type Incidente struct {
	ID            int64    `json:"id"`
	Descripcion   string   `json:"descripcion"`
	Decision      *string  `json:"decision,omitempty"` // liberar | retener_parcial | retener_total
	MontoRetenido *float64 `json:"monto_retenido,omitempty"`
	Nota          *string  `json:"nota,omitempty"`
	CreatedAt     *string  `json:"created_at,omitempty"`
	ResolvedAt    *string  `json:"resolved_at,omitempty"`
}

type ArticuloResumen struct {
	ID             int64   `json:"id,omitempty"`
	IDArticulo     int64   `json:"id_articulo"`
	Titulo         string  `json:"titulo"`
	PrecioRentaDia float64 `json:"precio_renta_dia,omitempty"`
	UnidadPrecio   string  `json:"unidad_precio,omitempty"`
	MontoDeposito  float64 `json:"monto_deposito,omitempty"`
	UbicacionTexto *string `json:"ubicacion_texto,omitempty"`
}

// Renta is the full rental record as the server renders it. The client never
// builds one locally; every field arrives over the wire.
type Renta struct {
	ID      int64  `json:"id"`
	IDRenta *int64 `json:"id_renta,omitempty"`

	IDArticulo     int64 `json:"id_articulo"`
	IDArrendatario int64 `json:"id_arrendatario"`
	IDPropietario  int64 `json:"id_propietario"`

	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`

	Modalidad        string `json:"modalidad,omitempty"` // horas | dias
	CantidadUnidades *int   `json:"cantidad_unidades,omitempty"`

	PrecioTotalRenta float64  `json:"precio_total_renta"`
	MontoDeposito    float64  `json:"monto_deposito"`
	SubtotalRenta    *float64 `json:"subtotal_renta,omitempty"`
	TotalAPagar      *float64 `json:"total_a_pagar,omitempty"`

	EstadoRenta string `json:"estado_renta"`

	ReembolsoSimulado bool     `json:"reembolso_simulado,omitempty"`
	MontoReembolso    *float64 `json:"monto_reembolso,omitempty"`

	// Coordinación / privacidad
	ModoEntrega                  *string       `json:"modo_entrega,omitempty"` // arrendador | neutral
	EntregaModo                  *string       `json:"entrega_modo,omitempty"` // domicilio | punto_entrega
	PuntoEntrega                 *PuntoEntrega `json:"punto_entrega,omitempty"`
	ZonaPublica                  *string       `json:"zona_publica,omitempty"`
	DireccionEntregaVisible      bool          `json:"direccion_entrega_visible,omitempty"`
	DireccionEntrega             *string       `json:"direccion_entrega,omitempty"`
	VentanasEntregaPropuestas    []string      `json:"ventanas_entrega_propuestas,omitempty"`
	VentanaEntregaElegida        *string       `json:"ventana_entrega_elegida,omitempty"`
	VentanasDevolucionPropuestas []string      `json:"ventanas_devolucion_propuestas,omitempty"`
	VentanaDevolucionElegida     *string       `json:"ventana_devolucion_elegida,omitempty"`
	CoordinacionConfirmada       bool          `json:"coordinacion_confirmada,omitempty"`

	// OTP
	CodigoEntrega       *string `json:"codigo_entrega,omitempty"`
	CodigoDevolucion    *string `json:"codigo_devolucion,omitempty"`
	ChecklistEntrega    *string `json:"checklist_entrega,omitempty"`
	ChecklistDevolucion *string `json:"checklist_devolucion,omitempty"`

	ChatHabilitado bool `json:"chat_habilitado,omitempty"`

	Entregado        bool `json:"entregado,omitempty"`
	Devuelto         bool `json:"devuelto,omitempty"`
	DepositoLiberado bool `json:"deposito_liberado,omitempty"`

	// Timeline map is authoritative when present; the fecha_* fields below
	// are the backward-compat fallback.
	Timeline map[string]*string `json:"timeline,omitempty"`

	FechaPago                   *string `json:"fecha_pago,omitempty"`
	FechaCoordinacionConfirmada *string `json:"fecha_coordinacion_confirmada,omitempty"`
	FechaEntregaConfirmada      *string `json:"fecha_entrega_confirmada,omitempty"`
	FechaEnUso                  *string `json:"fecha_en_uso,omitempty"`
	FechaFinalizacion           *string `json:"fecha_finalizacion,omitempty"`
	FechaIncidente              *string `json:"fecha_incidente,omitempty"`
	FechaCancelacion            *string `json:"fecha_cancelacion,omitempty"`
	FechaExpiracion             *string `json:"fecha_expiracion,omitempty"`

	FechaEntrega            *string `json:"fecha_entrega,omitempty"`
	FechaDevolucion         *string `json:"fecha_devolucion,omitempty"`
	FechaLiberacionDeposito *string `json:"fecha_liberacion_deposito,omitempty"`

	NotasEntrega    *string `json:"notas_entrega,omitempty"`
	NotasDevolucion *string `json:"notas_devolucion,omitempty"`

	Incidente *Incidente       `json:"incidente,omitempty"`
	Articulo  *ArticuloResumen `json:"articulo,omitempty"`
}

// RentaID prefers the explicit id_renta over id (older responses only set one).
func (r *Renta) RentaID() int64 {
	if r.IDRenta != nil && *r.IDRenta > 0 {
		return *r.IDRenta
	}
	return r.ID
}

// Subtotal falls back to precio_total_renta when the server omits the
// computed subtotal.
func (r *Renta) Subtotal() float64 {
	if r.SubtotalRenta != nil {
		return *r.SubtotalRenta
	}
	return r.PrecioTotalRenta
}

func (r *Renta) Deposito() float64 {
	return r.MontoDeposito
}

// Total falls back to subtotal+deposit when total_a_pagar is absent.
func (r *Renta) Total() float64 {
	if r.TotalAPagar != nil {
		return *r.TotalAPagar
	}
	return r.Subtotal() + r.Deposito()
}

type ChatMessage struct {
	ID        int64   `json:"id"`
	IDRenta   int64   `json:"id_renta"`
	IDEmisor  int64   `json:"id_emisor"`
	Mensaje   string  `json:"mensaje"`
	CreatedAt *string `json:"created_at,omitempty"`
}

type ChatResponse struct {
	Items []ChatMessage `json:"items"`
}

type Calificacion struct {
	Estrellas  int     `json:"estrellas"`
	Comentario *string `json:"comentario,omitempty"`
}

type CalificacionData struct {
	Calificacion *Calificacion `json:"calificacion,omitempty"`
}

// InboxItem is the condensed per-rental row of the inbox listing.
type InboxItem struct {
	IDRenta            int64   `json:"id_renta"`
	Estado             string  `json:"estado"`
	EntregaModo        *string `json:"entrega_modo,omitempty"`
	PuntoEntregaNombre *string `json:"punto_entrega_nombre,omitempty"`

	Fechas *struct {
		Inicio *string `json:"inicio,omitempty"`
		Fin    *string `json:"fin,omitempty"`
	} `json:"fechas,omitempty"`

	Modalidad         *string  `json:"modalidad,omitempty"`
	Total             *float64 `json:"total,omitempty"`
	Deposito          *float64 `json:"deposito,omitempty"`
	MontoDeposito     *float64 `json:"monto_deposito,omitempty"`
	DepositoLiberado  bool     `json:"deposito_liberado,omitempty"`
	ReembolsoSimulado bool     `json:"reembolso_simulado,omitempty"`

	Timeline map[string]*string `json:"timeline,omitempty"`

	FechaPago                   *string `json:"fecha_pago,omitempty"`
	FechaCoordinacionConfirmada *string `json:"fecha_coordinacion_confirmada,omitempty"`
	FechaEntrega                *string `json:"fecha_entrega,omitempty"`
	FechaEntregaConfirmada      *string `json:"fecha_entrega_confirmada,omitempty"`
	FechaEnUso                  *string `json:"fecha_en_uso,omitempty"`
	FechaDevolucion             *string `json:"fecha_devolucion,omitempty"`
	FechaFinalizacion           *string `json:"fecha_finalizacion,omitempty"`
	FechaIncidente              *string `json:"fecha_incidente,omitempty"`
	FechaCancelacion            *string `json:"fecha_cancelacion,omitempty"`
	FechaExpiracion             *string `json:"fecha_expiracion,omitempty"`
	FechaLiberacionDeposito     *string `json:"fecha_liberacion_deposito,omitempty"`

	Articulo *struct {
		IDArticulo int64   `json:"id_articulo"`
		Titulo     *string `json:"titulo,omitempty"`
		Imagen     *string `json:"imagen,omitempty"`
	} `json:"articulo,omitempty"`
}

// DepositoGarantia resolves the two deposit field spellings the listing uses.
func (it *InboxItem) DepositoGarantia() float64 {
	if it.Deposito != nil {
		return *it.Deposito
	}
	if it.MontoDeposito != nil {
		return *it.MontoDeposito
	}
	return 0
}

type InboxPage struct {
	Items   []InboxItem `json:"items"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int         `json:"total"`
}

type MisRentasData struct {
	Items []Renta `json:"items"`
	Como  string  `json:"como"`
}

// Me is the authenticated profile, the gate check's input.
type Me struct {
	ID                int64    `json:"id"`
	Nombre            string   `json:"nombre"`
	Apellidos         string   `json:"apellidos"`
	CorreoElectronico string   `json:"correo_electronico"`
	Telefono          *string  `json:"telefono,omitempty"`
	Ciudad            *string  `json:"ciudad,omitempty"`
	Estado            *string  `json:"estado,omitempty"`
	Pais              *string  `json:"pais,omitempty"`
	DireccionCompleta *string  `json:"direccion_completa,omitempty"`
	Roles             []string `json:"roles,omitempty"`
	Verificado        bool     `json:"verificado,omitempty"`
	EmailVerificado   *bool    `json:"email_verificado,omitempty"`
}

type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type UnreadCountData struct {
	Unread int `json:"unread"`
}

type UnreadTotalData struct {
	Total int `json:"total"`
}

type NotificacionesData struct {
	UnreadCount int `json:"unread_count"`
}
