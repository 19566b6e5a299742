package models

import (
	"net/url"
	"strings"
	"time"
)

// ProfileUser is the owner snapshot attached to profile reads.
type ProfileUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

type Experience struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company" bson:"company"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	From        string `json:"from" bson:"from"`
	To          string `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool   `json:"current" bson:"current"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string `json:"id" bson:"id"`
	School       string `json:"school" bson:"school"`
	Degree       string `json:"degree" bson:"degree"`
	FieldOfStudy string `json:"fieldofstudy" bson:"fieldofstudy"`
	From         string `json:"from" bson:"from"`
	To           string `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool   `json:"current" bson:"current"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
}

type Profile struct {
	ID             string       `json:"id" bson:"_id"`
	UserID         string       `json:"-" bson:"user"`
	User           *ProfileUser `json:"user,omitempty" bson:"-"`
	Handle         string       `json:"handle" bson:"handle"`
	Status         string       `json:"status" bson:"status"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty" bson:"githubusername,omitempty"`
	Skills         []string     `json:"skills" bson:"skills"`
	Social         SocialLinks  `json:"social" bson:"social"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	Date           time.Time    `json:"date" bson:"date"`
}

// ProfileRequest carries an upsert. Handle, status and skills are required on
// every submission; pointer fields are a patch — nil leaves the stored value
// untouched, a non-nil value (including "") replaces it.
type ProfileRequest struct {
	Handle         string  `json:"handle"`
	Status         string  `json:"status"`
	Skills         string  `json:"skills"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r *ProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Handle == "" {
		errors["handle"] = "Profile handle is required"
	} else if len(r.Handle) < 2 || len(r.Handle) > 40 {
		errors["handle"] = "Handle needs to be between 2 and 40 characters"
	}

	if r.Status == "" {
		errors["status"] = "Status field is required"
	}

	if r.Skills == "" {
		errors["skills"] = "Skills field is required"
	}

	if !isOptionalURL(r.Website) {
		errors["website"] = "Not a valid URL"
	}
	if !isOptionalURL(r.Youtube) {
		errors["youtube"] = "Not a valid URL"
	}
	if !isOptionalURL(r.Twitter) {
		errors["twitter"] = "Not a valid URL"
	}
	if !isOptionalURL(r.Facebook) {
		errors["facebook"] = "Not a valid URL"
	}
	if !isOptionalURL(r.Linkedin) {
		errors["linkedin"] = "Not a valid URL"
	}
	if !isOptionalURL(r.Instagram) {
		errors["instagram"] = "Not a valid URL"
	}

	return errors
}

// SkillList splits the comma-delimited skills string, trimming each entry.
// Order is preserved and duplicates are kept.
func (r *ProfileRequest) SkillList() []string {
	parts := strings.Split(r.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		skills = append(skills, strings.TrimSpace(p))
	}
	return skills
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r *ExperienceRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Job title field is required"
	}
	if r.Company == "" {
		errors["company"] = "Company field is required"
	}
	if r.From == "" {
		errors["from"] = "From date field is required"
	}

	return errors
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r *EducationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.School == "" {
		errors["school"] = "School field is required"
	}
	if r.Degree == "" {
		errors["degree"] = "Degree field is required"
	}
	if r.FieldOfStudy == "" {
		errors["fieldofstudy"] = "Field of study field is required"
	}
	if r.From == "" {
		errors["from"] = "From date field is required"
	}

	return errors
}

func isOptionalURL(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	u, err := url.Parse(*s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
