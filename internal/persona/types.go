package persona

// RequiredFields must be present in every persona record.
var RequiredFields = []string{
	"bird_id", "name", "species", "persona", "description",
	"promptMeta", "physicalDetails", "customStyle",
}

// Persona is a named bird character.
type Persona struct {
	ID              int                 `json:"bird_id" yaml:"bird_id"`
	Name            string              `json:"name" yaml:"name"`
	Species         string              `json:"species" yaml:"species"`
	Persona         string              `json:"persona" yaml:"persona"`
	Description     string              `json:"description" yaml:"description"`
	PromptVariants  []string            `json:"promptMeta" yaml:"promptMeta"`
	PhysicalDetails string              `json:"physicalDetails" yaml:"physicalDetails"`
	CustomStyles    map[string][]string `json:"customStyle" yaml:"customStyle"`
}

func (p Persona) String() string {
	return p.Name + " (" + p.Species + ") - " + p.Description
}
