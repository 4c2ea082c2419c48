// Package model contains domain models passed between layers.
package model

// Contact holds how a coach can be reached.
type Contact struct {
	Phone string `json:"phone" yaml:"phone"`
	Email string `json:"email" yaml:"email"`
}

// Coach is directory reference data supplied by the roster sync.
// The engine never deletes coaches.
type Coach struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Specialization string   `json:"specialization" yaml:"specialization"`
	Experience     string   `json:"experience" yaml:"experience"` // free-form label, e.g. "8 years"
	Rating         float64  `json:"rating" yaml:"rating"`         // 0.0 - 5.0
	Languages      []string `json:"languages" yaml:"languages"`
	Certifications []string `json:"certifications" yaml:"certifications"`
	Contact        Contact  `json:"contact" yaml:"contact"`
}

// Clone returns a copy that shares no slices with c.
func (c Coach) Clone() Coach {
	out := c
	out.Languages = append([]string(nil), c.Languages...)
	out.Certifications = append([]string(nil), c.Certifications...)
	return out
}
