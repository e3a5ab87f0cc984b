package domain

// Hero is the second persisted record kind. It follows the same lifecycle
// as Measurement: built from validated input, inserted once, re-read for
// store-generated fields, never updated or deleted.
type Hero struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SecretName string `json:"secret_name"`
	Age        *int   `json:"age"`
}

// HeroInput carries only the client-settable fields of a hero.
type HeroInput struct {
	Name       string
	SecretName string
	Age        *int
}

func NewHero(in HeroInput) Hero {
	return Hero{
		Name:       in.Name,
		SecretName: in.SecretName,
		Age:        in.Age,
	}
}
