package domain

// Type distinguishes the two kinds of PARTNER_SPONSOR rows.
type Type string

const (
	TypePartner Type = "Partner"
	TypeSponsor Type = "Sponsor"
)

// PartnerSponsor mirrors a row of the PARTNER_SPONSOR table. Logo is an
// attachment cell whose shape varies between a bare URL string, an object
// and a list of objects; LogoURLs normalizes it.
type PartnerSponsor struct {
	ID          any    `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        Type   `json:"type,omitempty"`
	Logo        any    `json:"logo,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

// LogoURLs flattens the logo cell into a list of URLs, skipping entries
// without one.
func (p *PartnerSponsor) LogoURLs() []string {
	switch logo := p.Logo.(type) {
	case nil:
		return []string{}
	case string:
		if logo == "" {
			return []string{}
		}
		return []string{logo}
	case map[string]any:
		if url := attachmentURL(logo); url != "" {
			return []string{url}
		}
		return []string{}
	case []any:
		urls := make([]string, 0, len(logo))
		for _, item := range logo {
			switch v := item.(type) {
			case string:
				if v != "" {
					urls = append(urls, v)
				}
			case map[string]any:
				if url := attachmentURL(v); url != "" {
					urls = append(urls, url)
				}
			}
		}
		return urls
	default:
		return []string{}
	}
}

func attachmentURL(m map[string]any) string {
	for _, key := range []string{"url", "Url"} {
		if url, ok := m[key].(string); ok {
			return url
		}
	}
	return ""
}
