package sheets

import (
	"fmt"
	"strings"
)

type Profile struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Bio             string `json:"bio"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	ProfileImageURL string `json:"profileImageUrl"`
	CVFileURL       string `json:"cvFileUrl"`
}

type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

type Certificate struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl"`
	CredentialURL string `json:"credentialUrl"`
}

// ProjectStatus is one of Completed, Ongoing or Planned.
type ProjectStatus string

const (
	StatusCompleted ProjectStatus = "Completed"
	StatusOngoing   ProjectStatus = "Ongoing"
	StatusPlanned   ProjectStatus = "Planned"
)

// ParseProjectStatus matches s case-insensitively and falls back to
// StatusCompleted.
func ParseProjectStatus(s string) ProjectStatus {
	for _, st := range []ProjectStatus{StatusCompleted, StatusOngoing, StatusPlanned} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st
		}
	}
	return StatusCompleted
}

type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl"`
	DemoURL     string        `json:"demoUrl"`
	GithubURL   string        `json:"githubUrl"`
	Tags        []string      `json:"tags"`
	Category    string        `json:"category"`
	Date        string        `json:"date"`
	Status      ProjectStatus `json:"status"`
	Featured    bool          `json:"featured"`
}

type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	ImageURL    string   `json:"imageUrl"`
	PublishDate string   `json:"publishDate"`
	ReadingTime int      `json:"readingTime"`
	Tags        []string `json:"tags"`
	ExternalURL string   `json:"externalUrl"`
}

type SocialLinks struct {
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
}

type ContactInfo struct {
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Location    string      `json:"location"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// Portfolio is every content domain from one fetch.
type Portfolio struct {
	Profile      Profile       `json:"personalInfo"`
	Skills       []Skill       `json:"skills"`
	Certificates []Certificate `json:"certificates"`
	Projects     []Project     `json:"projects"`
	BlogPosts    []BlogPost    `json:"blogPosts"`
	Contact      ContactInfo   `json:"contactInfo"`
}

func profileFromRow(r Row) Profile {
	d := DefaultProfile()
	return Profile{
		Name:            r.Text(FieldName, d.Name),
		Title:           r.Text(FieldTitle, d.Title),
		Bio:             r.Text("bio", d.Bio),
		Email:           r.Text(FieldEmail, d.Email),
		Phone:           r.Text(FieldPhone, d.Phone),
		Location:        r.Text(FieldLocation, d.Location),
		ProfileImageURL: r.Text("profileImageUrl", d.ProfileImageURL),
		CVFileURL:       r.Text("cvFileUrl", d.CVFileURL),
	}
}

func skillFromRow(r Row, _ int) Skill {
	return Skill{
		Name:     r.Text(FieldName, ""),
		Level:    min(max(r.Int("level", 0), 0), 100),
		Category: r.Text(FieldCategory, DefaultCategory),
		Icon:     r.Text("icon", ""),
	}
}

func certificateFromRow(r Row, pos int) Certificate {
	return Certificate{
		ID:            fmt.Sprintf("cert-%d", pos),
		Title:         r.Text(FieldTitle, ""),
		Issuer:        r.Text("issuer", ""),
		Date:          r.Text(FieldDate, ""),
		Description:   r.Text(FieldDescription, ""),
		ImageURL:      r.Text(FieldImageURL, ""),
		CredentialURL: r.Text("credentialUrl", ""),
	}
}

func projectFromRow(r Row, pos int) Project {
	return Project{
		ID:          fmt.Sprintf("project-%d", pos),
		Title:       r.Text(FieldTitle, ""),
		Description: r.Text(FieldDescription, ""),
		ImageURL:    r.Text(FieldImageURL, PlaceholderImage),
		DemoURL:     r.Text("demoUrl", ""),
		GithubURL:   r.Text("githubUrl", ""),
		Tags:        r.List(FieldTags),
		Category:    r.Text(FieldCategory, DefaultCategory),
		Date:        r.Text(FieldDate, ""),
		Status:      ParseProjectStatus(r.Text("status", "")),
		Featured:    r.Bool("featured"),
	}
}

func blogPostFromRow(r Row, pos int) BlogPost {
	return BlogPost{
		ID:          fmt.Sprintf("blog-%d", pos),
		Title:       r.Text(FieldTitle, ""),
		Summary:     r.Text("summary", ""),
		ImageURL:    r.Text(FieldImageURL, ""),
		PublishDate: r.Text("publishDate", ""),
		ReadingTime: r.Int("readingTime", DefaultReadingTime),
		Tags:        r.List(FieldTags),
		ExternalURL: r.Text("externalUrl", ""),
	}
}

func contactFromRow(r Row) ContactInfo {
	d := DefaultContactInfo()
	return ContactInfo{
		Email:    r.Text(FieldEmail, d.Email),
		Phone:    r.Text(FieldPhone, d.Phone),
		Location: r.Text(FieldLocation, d.Location),
		SocialLinks: SocialLinks{
			LinkedIn: r.Text("linkedin", ""),
			GitHub:   r.Text("github", ""),
			Twitter:  r.Text("twitter", ""),
			Facebook: r.Text("facebook", ""),
		},
	}
}
