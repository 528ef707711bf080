package sheets

const (
	DefaultCategory    = "General"
	DefaultReadingTime = 5
	PlaceholderImage   = "/placeholder.svg"
)

// DefaultProfile is shown when no profile row is available.
func DefaultProfile() Profile {
	return Profile{
		Name:     "Portfolio Owner",
		Title:    "Technology Professional",
		Bio:      "Welcome to my portfolio. Content will appear here once the portfolio spreadsheet is connected.",
		Location: "Earth",
	}
}

// DefaultContactInfo is shown when no contact row is available.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{Location: DefaultProfile().Location}
}

// DefaultSkills is shown when skills could not be fetched.
func DefaultSkills() []Skill {
	return []Skill{
		{Name: "Communication", Level: 90, Category: "Soft Skills"},
		{Name: "Problem Solving", Level: 85, Category: "Soft Skills"},
		{Name: "Technical Support", Level: 80, Category: DefaultCategory},
	}
}

// DefaultCertificates is shown when certificates could not be fetched.
func DefaultCertificates() []Certificate {
	return []Certificate{
		{ID: "cert-1", Title: "Professional Certificate", Issuer: "Certification Body", Description: "Certificates appear here once the portfolio spreadsheet is connected."},
	}
}

// DefaultProjects is shown when projects could not be fetched.
func DefaultProjects() []Project {
	return []Project{
		{
			ID:          "project-1",
			Title:       "Sample Project",
			Description: "Projects appear here once the portfolio spreadsheet is connected.",
			ImageURL:    PlaceholderImage,
			Tags:        []string{},
			Category:    DefaultCategory,
			Status:      StatusCompleted,
			Featured:    true,
		},
	}
}

// DefaultBlogPosts is empty; there is no meaningful placeholder post.
func DefaultBlogPosts() []BlogPost {
	return []BlogPost{}
}
