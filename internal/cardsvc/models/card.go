package models

// Logical field names of a card row. Actual sheet headers may differ in
// casing or spacing; the sheet adapter resolves them.
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldTitle      = "title"
	FieldCompany    = "company"
	FieldAreaCode   = "area_code"
	FieldPhone      = "phone"
	FieldIsWhatsapp = "is_whatsapp"
	FieldEmail      = "email"
	FieldLinkedin   = "linkedin"
	FieldOthers     = "others"
	FieldBio        = "bio"
	FieldAvatar     = "avatar"
	FieldPassword   = "password"
	FieldCreatedAt  = "created_at"
	FieldReferredBy = "referred_by"
)

// UserCardFields is the full logical schema of the User_Cards table.
var UserCardFields = []string{
	FieldID, FieldName, FieldTitle, FieldCompany, FieldAreaCode, FieldPhone,
	FieldIsWhatsapp, FieldEmail, FieldLinkedin, FieldOthers, FieldBio,
	FieldAvatar, FieldPassword, FieldCreatedAt, FieldReferredBy,
}

// SalesCardFields is the stricter schema of the Internal_Sales table.
// Rows there are maintained by hand, there is no self-serve write path.
var SalesCardFields = []string{
	FieldID, FieldName, FieldTitle, FieldCompany, FieldPhone, FieldEmail,
}

// RequiredFields must be non-empty on create.
var RequiredFields = []string{FieldName, FieldTitle, FieldCompany, FieldPhone, FieldEmail}

// CardInput is the create-card request body.
type CardInput struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	AreaCode   string `json:"area_code,omitempty"`
	Phone      string `json:"phone"`
	IsWhatsapp bool   `json:"is_whatsapp,omitempty"`
	Email      string `json:"email"`
	Linkedin   string `json:"linkedin,omitempty"`
	Others     string `json:"others,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	Password   string `json:"password,omitempty"`
	ReferredBy string `json:"referred_by,omitempty"`
}

// CardPatch is the editable subset of a card. Pointer fields distinguish
// "omitted" from "explicitly set": a nil field is left untouched, a non-nil
// empty string clears the column, a non-nil false unchecks the whatsapp flag.
type CardPatch struct {
	Name       *string `json:"name,omitempty"`
	Title      *string `json:"title,omitempty"`
	Company    *string `json:"company,omitempty"`
	AreaCode   *string `json:"area_code,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsWhatsapp *bool   `json:"is_whatsapp,omitempty"`
	Email      *string `json:"email,omitempty"`
	Linkedin   *string `json:"linkedin,omitempty"`
	Others     *string `json:"others,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

// Changes flattens the patch into stored column values, keyed by logical
// field name. Only fields present in the patch appear in the result.
func (p CardPatch) Changes() map[string]string {
	out := map[string]string{}
	set := func(field string, v *string) {
		if v != nil {
			out[field] = *v
		}
	}
	set(FieldName, p.Name)
	set(FieldTitle, p.Title)
	set(FieldCompany, p.Company)
	set(FieldAreaCode, p.AreaCode)
	set(FieldPhone, p.Phone)
	set(FieldEmail, p.Email)
	set(FieldLinkedin, p.Linkedin)
	set(FieldOthers, p.Others)
	set(FieldBio, p.Bio)
	set(FieldAvatar, p.Avatar)
	if p.IsWhatsapp != nil {
		out[FieldIsWhatsapp] = FormatBool(*p.IsWhatsapp)
	}
	return out
}

// CardView is the public shape of a card, returned by verify and rendered
// on the card page. No password, no referral bookkeeping.
type CardView struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	AreaCode   string `json:"area_code"`
	Phone      string `json:"phone"`
	IsWhatsapp bool   `json:"is_whatsapp"`
	Email      string `json:"email"`
	Linkedin   string `json:"linkedin"`
	Others     string `json:"others"`
	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`
}

// FormatBool renders a flag the way the sheet stores it.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
