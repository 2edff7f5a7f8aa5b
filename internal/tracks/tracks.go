// Package tracks holds the descriptive text shown next to a recommendation.
package tracks

import (
	"github.com/abhisek/edupath/internal/quiz"
	"github.com/abhisek/edupath/internal/recommend"
)

// Details describes a study track to the student.
type Details struct {
	Track       quiz.Track `json:"track"`
	Description string     `json:"description"`
	Careers     []string   `json:"careers"`
}

var all = []Details{
	{
		Track:       recommend.GeneralScience,
		Description: "Perfect for students interested in scientific inquiry and research. This program provides a strong foundation in physics, chemistry, biology, and mathematics.",
		Careers:     []string{"Doctor", "Engineer", "Researcher", "Pharmacist", "Laboratory Technician"},
	},
	{
		Track:       recommend.GeneralArts,
		Description: "Ideal for creative and analytical minds interested in humanities, languages, and social sciences.",
		Careers:     []string{"Lawyer", "Journalist", "Teacher", "Social Worker", "Writer"},
	},
	{
		Track:       recommend.Business,
		Description: "Great for entrepreneurial spirits and those interested in commerce, economics, and business management.",
		Careers:     []string{"Business Owner", "Accountant", "Marketing Manager", "Banker", "Financial Analyst"},
	},
	{
		Track:       recommend.VisualArts,
		Description: "Perfect for creative minds interested in visual expression, design, and artistic creation.",
		Careers:     []string{"Graphic Designer", "Artist", "Animator", "Art Director", "Fashion Designer"},
	},
	{
		Track:       recommend.Agriculture,
		Description: "Ideal for students interested in farming, environmental science, and sustainable food production.",
		Careers:     []string{"Agricultural Officer", "Veterinarian", "Environmental Scientist", "Farm Manager", "Food Technologist"},
	},
	{
		Track:       recommend.HomeEconomics,
		Description: "Great for students interested in nutrition, family studies, and practical life skills.",
		Careers:     []string{"Nutritionist", "Fashion Designer", "Hotel Manager", "Food Scientist", "Family Counselor"},
	},
}

var byTrack = func() map[quiz.Track]Details {
	m := make(map[quiz.Track]Details, len(all))
	for _, d := range all {
		m[d.Track] = d
	}
	return m
}()

// All returns every known track in recommendation order.
func All() []Details {
	out := make([]Details, len(all))
	copy(out, all)
	return out
}

// Lookup returns the details for track. Tracks without an entry, such as
// ones added by a custom engine table, get the General Science text under
// their own name.
func Lookup(track quiz.Track) Details {
	if d, ok := byTrack[track]; ok {
		return d
	}
	d := byTrack[recommend.GeneralScience]
	d.Track = track
	return d
}

// Known reports whether track has its own description.
func Known(track quiz.Track) bool {
	_, ok := byTrack[track]
	return ok
}
