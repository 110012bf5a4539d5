package domain

// SystemModule identifies an area of the municipal accounting system.
type SystemModule string

const (
	ModulePlanCuentas        SystemModule = "Plan de Cuentas"
	ModuleConsultaIngresos   SystemModule = "Consulta Ingresos"
	ModuleConsultaGastos     SystemModule = "Consulta Gastos"
	ModulePresupuesto        SystemModule = "Presupuesto"
	ModuleContabilidad       SystemModule = "Contabilidad"
	ModuleDecretosPago       SystemModule = "Decretos de Pago"
	ModuleDocumentosGarantia SystemModule = "Documentos Garantía"
	ModuleMenuVarios         SystemModule = "Menú Varios"
	ModuleParametros         SystemModule = "Parámetros"
	ModuleTransparencia      SystemModule = "Transparencia"
)

// DataSource identifies the preferred evidentiary basis for an answer.
type DataSource string

const (
	SourceLibraryPDF     DataSource = "Biblioteca de Conocimientos (PDFs Normativos)"
	SourceSupportHistory DataSource = "Histórico de Soportes y Tickets"
	SourceRegulations    DataSource = "Normativa Vigente (Ley Chile/CGR)"
)

var modules = []SystemModule{
	ModulePlanCuentas,
	ModuleConsultaIngresos,
	ModuleConsultaGastos,
	ModulePresupuesto,
	ModuleContabilidad,
	ModuleDecretosPago,
	ModuleDocumentosGarantia,
	ModuleMenuVarios,
	ModuleParametros,
	ModuleTransparencia,
}

var dataSources = []DataSource{
	SourceLibraryPDF,
	SourceSupportHistory,
	SourceRegulations,
}

// Modules returns the fixed list of system modules in menu order.
func Modules() []SystemModule {
	out := make([]SystemModule, len(modules))
	copy(out, modules)
	return out
}

// DataSources returns the fixed list of data source preferences.
func DataSources() []DataSource {
	out := make([]DataSource, len(dataSources))
	copy(out, dataSources)
	return out
}

// Valid reports whether m is one of the known modules.
func (m SystemModule) Valid() bool {
	for _, known := range modules {
		if m == known {
			return true
		}
	}
	return false
}

// Valid reports whether d is one of the known data sources.
func (d DataSource) Valid() bool {
	for _, known := range dataSources {
		if d == known {
			return true
		}
	}
	return false
}

// Suggestion is a canned question shown as a quick-start for a module.
type Suggestion struct {
	ID     string       `json:"id"`
	Text   string       `json:"text"`
	Module SystemModule `json:"module"`
}

// Link is an official reference site surfaced in the UI.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

var suggestions = []Suggestion{
	{ID: "c1", Text: "¿Qué cuenta uso para registrar licencias médicas no recuperables?", Module: ModuleContabilidad},
	{ID: "c2", Text: "Criterios para activar bienes de uso depreciables.", Module: ModuleContabilidad},
	{ID: "c3", Text: "¿Cómo realizar el asiento de apertura anual?", Module: ModuleContabilidad},

	{ID: "p1", Text: "¿Cómo se aplica el ajuste sencillo en las cuentas presupuestarias?", Module: ModulePresupuesto},
	{ID: "p2", Text: "¿Cuál es el procedimiento para una modificación presupuestaria?", Module: ModulePresupuesto},
	{ID: "p3", Text: "Consultar saldo disponible en ítem 22.", Module: ModulePresupuesto},

	{ID: "dp1", Text: "Instrucciones para la carga de decretos de pago pendientes.", Module: ModuleDecretosPago},
	{ID: "dp2", Text: "¿Cómo anular un decreto de pago ya firmado?", Module: ModuleDecretosPago},

	{ID: "pc1", Text: "¿Cómo asociar una cuenta contable a un ítem presupuestario?", Module: ModulePlanCuentas},
	{ID: "pc2", Text: "Estructura del plan de cuentas para sector municipal.", Module: ModulePlanCuentas},

	{ID: "ci1", Text: "¿Cómo obtener el detalle de ingresos por permisos de circulación?", Module: ModuleConsultaIngresos},
	{ID: "ci2", Text: "Reporte de ingresos percibidos vs devengados.", Module: ModuleConsultaIngresos},

	{ID: "cg1", Text: "Listar facturas pendientes de pago a 30 días.", Module: ModuleConsultaGastos},
	{ID: "cg2", Text: "Estado de ejecución de gastos en personal.", Module: ModuleConsultaGastos},

	{ID: "dg1", Text: "¿Cuál es el código para documentos de garantía en custodia?", Module: ModuleDocumentosGarantia},
	{ID: "dg2", Text: "Registrar devolución de boleta de garantía.", Module: ModuleDocumentosGarantia},

	{ID: "mv1", Text: "Generación de archivo ZIP para la Contraloría.", Module: ModuleMenuVarios},
	{ID: "mv2", Text: "Configuración de usuarios y permisos del sistema.", Module: ModuleMenuVarios},

	{ID: "pm1", Text: "Actualización de indicadores económicos (UTM, UF).", Module: ModuleParametros},
	{ID: "pm2", Text: "Cierre de año y apertura de periodo contable.", Module: ModuleParametros},

	{ID: "tr1", Text: "Generar archivo para portal de Transparencia Activa.", Module: ModuleTransparencia},
	{ID: "tr2", Text: "¿Qué ítems se excluyen del reporte de transparencia?", Module: ModuleTransparencia},
}

// SuggestionsFor returns up to limit quick questions for a module. When the
// module has none, the first entries of the catalog are returned instead so
// the UI always has something to offer.
func SuggestionsFor(module SystemModule, limit int) []Suggestion {
	if limit <= 0 {
		return nil
	}

	var out []Suggestion
	for _, s := range suggestions {
		if s.Module == module {
			out = append(out, s)
			if len(out) == limit {
				return out
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	if limit > len(suggestions) {
		limit = len(suggestions)
	}
	out = make([]Suggestion, limit)
	copy(out, suggestions[:limit])
	return out
}

// OfficialLinks returns the fixed list of official reference sites.
func OfficialLinks() []Link {
	return []Link{
		{Name: "Contraloría General (CGR)", URL: "https://www.contraloria.cl"},
		{Name: "Dirección de Presupuestos (DIPRES)", URL: "https://www.dipres.gob.cl"},
		{Name: "Biblioteca Congreso Nacional (BCN)", URL: "https://www.bcn.cl"},
		{Name: "SIGFE", URL: "https://www.sigfe.cl"},
		{Name: "SUBDERE", URL: "https://www.subdere.gov.cl"},
		{Name: "Normativa Contable (CGR)", URL: "https://www.contraloria.cl/web/cgr/normativa-contable"},
		{Name: "Ley Chile", URL: "https://www.leychile.cl"},
	}
}
