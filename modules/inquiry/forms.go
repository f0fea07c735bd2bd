package inquiry

// DefaultLanguage is the language the built-in messages are written in.
const DefaultLanguage = "pt-BR"

// Form identifiers, used in routes, metrics and message keys.
const (
	FormBooking = "booking"
	FormContact = "contact"
)

// BookingRequest is the appointment form. Every field is required.
type BookingRequest struct {
	Name    string `form:"nome"`
	Phone   string `form:"telefone"`
	Email   string `form:"email"`
	Service string `form:"servico"`
	Date    string `form:"data"`
	Time    string `form:"horario"`
}

// Fields describes the request for validation. With a catalog, service
// and time slot are limited to the catalog's options.
func (r BookingRequest) Fields(c *Catalog) []Field {
	var services, slots []string
	if c != nil {
		services = c.ServiceIDs()
		slots = c.Slots
	}
	return []Field{
		{Name: "nome", Label: "Nome", Value: r.Name, Kind: KindText, Required: true, MaxLen: 120},
		{Name: "telefone", Label: "Telefone", Value: r.Phone, Kind: KindPhone, Required: true, MaxLen: 32},
		{Name: "email", Label: "E-mail", Value: r.Email, Kind: KindEmail, Required: true, MaxLen: 254},
		{Name: "servico", Label: "Serviço", Value: r.Service, Kind: KindSelect, Required: true, Options: services},
		{Name: "data", Label: "Data", Value: r.Date, Kind: KindDate, Required: true},
		{Name: "horario", Label: "Horário", Value: r.Time, Kind: KindSelect, Required: true, Options: slots},
	}
}

// ContactRequest is the general message form. Phone is optional.
type ContactRequest struct {
	Name    string `form:"nome"`
	Email   string `form:"email"`
	Phone   string `form:"telefone"`
	Message string `form:"mensagem"`
}

func (r ContactRequest) Fields(_ *Catalog) []Field {
	return []Field{
		{Name: "nome", Label: "Nome", Value: r.Name, Kind: KindText, Required: true, MaxLen: 120},
		{Name: "email", Label: "E-mail", Value: r.Email, Kind: KindEmail, Required: true, MaxLen: 254},
		{Name: "telefone", Label: "Telefone", Value: r.Phone, Kind: KindPhone, MaxLen: 32},
		{Name: "mensagem", Label: "Mensagem", Value: r.Message, Kind: KindText, Required: true, MaxLen: 4000, Multiline: true},
	}
}

// BookingFieldRequest carries the whole booking form plus the name of the
// field that lost focus.
type BookingFieldRequest struct {
	BookingRequest
	Field string `path:"field"`
}

// ContactFieldRequest is BookingFieldRequest for the contact form.
type ContactFieldRequest struct {
	ContactRequest
	Field string `path:"field"`
}

// PhoneRequest is sent on every keystroke in the phone input.
type PhoneRequest struct {
	Phone string `form:"telefone"`
}
