package cache

// CardKeyParts lists the inputs of one rendered card.
// Hashes are hex digests from [Hash]; Profile and Style may be any
// JSON-serializable value.
type CardKeyParts struct {
	IllustrationHash string
	TemplateHash     string
	Profile          any
	Style            any
	TitleFont        string
	BodyFont         string
	Title            string
	Tagline          string
	Version          string
}

// Keyer generates cache keys.
type Keyer interface {
	CardKey(parts CardKeyParts) string
}

// DefaultKeyer hashes every part into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CardKey returns "card:<sha256>".
func (DefaultKeyer) CardKey(p CardKeyParts) string {
	return hashKey("card",
		p.IllustrationHash,
		p.TemplateHash,
		p.Profile,
		p.Style,
		p.TitleFont,
		p.BodyFont,
		p.Title,
		p.Tagline,
		p.Version,
	)
}
