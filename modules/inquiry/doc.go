// Package inquiry implements the booking and contact forms of the site.
//
// A form is described as a slice of Field values built fresh from the bound
// request. Validator runs the rules that apply to each field and collects
// one error per failing field:
//
//	v := inquiry.NewValidator(inquiry.WithLocation(loc))
//	res := v.ValidateForm(req.Fields(catalog))
//	if !res.Valid() {
//		// res.ErrorsByField() holds one message per field
//	}
//
// Service takes a valid form, builds a Submission snapshot and hands it to
// a Submitter (e-mail to the business inbox, or a simulated delay in
// development). Handlers exposes both forms over HTTP with DataStar patches
// for enhanced clients and full page renders for plain form posts.
package inquiry
