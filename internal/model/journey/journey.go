package journey

import (
	"errors"
	"strings"

	"github.com/coordinator-insight/backend/internal/toggle"
)

// Perspective names the viewpoint selected by the toggle.
type Perspective string

const (
	Career  Perspective = "career"
	Patient Perspective = "patient"
)

var ErrUnknownPerspective = errors.New("unknown perspective")

// Step is one card of a journey timeline.
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// Highlight is one entry of the sidebar list.
type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContentSet is everything displayed for one perspective.
type ContentSet struct {
	Perspective Perspective `json:"perspective"`
	Label       string      `json:"label"`
	Steps       []Step      `json:"steps"`
	Heading     string      `json:"heading"`
	Highlights  []Highlight `json:"highlights"`
	Tip         string      `json:"tip"`
}

// FromOption maps a toggle selection to its perspective.
func FromOption(opt toggle.Option) Perspective {
	if opt == toggle.OptionB {
		return Patient
	}
	return Career
}

// Option maps a perspective back to the toggle selection.
func (p Perspective) Option() toggle.Option {
	if p == Patient {
		return toggle.OptionB
	}
	return toggle.OptionA
}

// Parse resolves a perspective name, case-insensitively.
func Parse(raw string) (Perspective, error) {
	switch Perspective(strings.ToLower(strings.TrimSpace(raw))) {
	case Career:
		return Career, nil
	case Patient:
		return Patient, nil
	default:
		return "", ErrUnknownPerspective
	}
}

// For returns the content set of a perspective.
func For(p Perspective) ContentSet {
	if p == Patient {
		return patientSet
	}
	return careerSet
}

var careerSet = ContentSet{
	Perspective: Career,
	Label:       "Career Aspirant",
	Steps: []Step{
		{Title: "The Vetting", Description: "Analyzing complex medical records and social histories to find the perfect candidate.", Tag: "Clinical Intelligence"},
		{Title: "The Pager", Description: "The 2 a.m. call. You have minutes to accept an organ and hours to mobilize teams.", Tag: "Crisis Management"},
		{Title: "The Logistics", Description: "Coordinating private jets, surgical schedules, and multi-state medical transport.", Tag: "Logistics Mastery"},
		{Title: "The New Life", Description: "Educating families on post-op care and managing the 'miracle' of the recovery ward.", Tag: "Patient Education"},
	},
	Heading: "The Coordinator Advantage",
	Highlights: []Highlight{
		{Title: "Direct Autonomy", Description: "You decide if an organ is high-quality enough for your patient."},
		{Title: "Salary Potential", Description: "Coordinators often earn $100k+ with 24/7 on-call pay."},
		{Title: "Clinical Depth", Description: "Master immunology, pharmacology, and surgical logistics."},
	},
	Tip: "Tip: ICU nursing experience is the #1 prerequisite for this role.",
}

var patientSet = ContentSet{
	Perspective: Patient,
	Label:       "Patient & Family",
	Steps: []Step{
		{Title: "The Evaluation", Description: "Meeting your coordinator. They become your medical lighthouse through the tests.", Tag: "First Connection"},
		{Title: "The Wait", Description: "Regular labs and updates. Your coordinator is the bridge to the UNOS waitlist.", Tag: "Steady Support"},
		{Title: "The Big Day", Description: "Receiving 'The Call'. Your coordinator guides you through every hospital door.", Tag: "Rapid Mobilization"},
		{Title: "The Recovery", Description: "Learning your new meds. Your coordinator manages your clinic visits for a lifetime.", Tag: "Long-term Care"},
	},
	Heading: "A Family Lifeline",
	Highlights: []Highlight{
		{Title: "Continuous Access", Description: "You are never alone; your coordinator is your 24/7 link."},
		{Title: "Medication Help", Description: "Complex post-op drugs are simplified by coordinator teaching."},
		{Title: "Peace of Mind", Description: "They handle the insurance and the OPOs while you heal."},
	},
	Tip: "Tip: Your coordinator is often your legal and emotional health proxy during surgery.",
}
