package messaging

import "kliernav-crm/internal/common/models"

// messageTemplates are the canned outbound openers per service type, also
// used as the pool for simulated inbound replies.
var messageTemplates = map[models.ServiceType][]string{
	models.ServiceLanding: {
		"Validemos tu idea en 48h con una landing profesional de alta conversión.",
		"El paquete Landing SAME-DAY incluye diseño, copy y dominio. Entrega mañana a las 20hs.",
	},
	models.ServiceEcommerce: {
		"Comienza a vender online con integración Mercado Pago en menos de 2 días.",
		"¿Tienes tu catálogo listo?",
	},
	models.ServiceLocal: {
		"Aparece primero en Google Maps.",
		"Optimizamos tu perfil de GBP.",
	},
	models.ServiceAutomation: {
		"Deja de perder leads. Automatizamos tu WhatsApp.",
		"Implementamos un bot de cualificación.",
	},
	models.ServiceMobile: {
		"Lleva tu catálogo al bolsillo de tus clientes.",
		"Desarrollo de MVP móvil ágil.",
	},
	models.ServiceCRO: {
		"Aumentamos la tasa de conversión.",
		"Auditoría CRO express.",
	},
	models.ServiceCRM: {
		"Optimiza tu proceso de ventas con una estructura CRM robusta.",
		"Te ayudamos a migrar tus datos y automatizar tu embudo.",
	},
	models.ServiceAppWeb: {
		"Desarrollamos soluciones a medida para tu operativa.",
		"Llevamos tu lógica de negocio a una App Web escalable.",
	},
	models.ServiceOther: {
		"Hola, ¿en qué podemos ayudarte?",
		"Gracias por contactar.",
	},
}

// TemplatesFor returns the canned messages for a service type, falling back
// to the generic pool.
func TemplatesFor(serviceType models.ServiceType) []string {
	if templates, ok := messageTemplates[serviceType]; ok {
		return templates
	}
	return messageTemplates[models.ServiceOther]
}
