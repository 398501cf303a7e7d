// Package rules holds the lodge rules and regulations every applicant must
// accept before submitting.
package rules

// Section groups related rules under a heading.
type Section struct {
	Title string   `json:"title"`
	Rules []string `json:"rules"`
}

// Consequence describes an enforcement outcome.
type Consequence struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Document is the full rules text presented during registration.
type Document struct {
	GeneralPrinciples string        `json:"general_principles"`
	Sections          []Section     `json:"sections"`
	Consequences      []Consequence `json:"consequences"`
}

// Lodge is the chapter's current rules document.
var Lodge = Document{
	GeneralPrinciples: "All occupants of the MCAN lodge must adhere strictly to the policies and rules guiding their stay. Failure to comply with these rules will result in the occupant being asked to leave the lodge.",
	Sections: []Section{
		{
			Title: "Religious Practice",
			Rules: []string{
				"Every lodger must practice the Islamic religion exclusively.",
				"No other religion is allowed to be practiced or proclaimed within the lodge.",
			},
		},
		{
			Title: "Respect and Conduct",
			Rules: []string{
				"Lodgers must treat each other with utmost respect, following the example set by Prophet Muhammad and embodying principles of humanity.",
				"Fighting or engaging in any form of vocal or physical combat is strictly prohibited.",
				"Violators will be dismissed from the lodge.",
			},
		},
		{
			Title: "Dress Code",
			Rules: []string{
				"Lodgers must dress modestly, adhering to Islamic dress codes.",
				"Any dressing style that exposes a significant part of the body is considered inappropriate and discouraged.",
				"Violations of the dress code will result in warnings and advice. After three warnings, the violator will be asked to leave the lodge.",
			},
		},
		{
			Title: "Sanitation",
			Rules: []string{
				"Lodgers must actively participate in maintaining cleanliness within the lodge.",
				"Participation in environmental sanitation activities is mandatory.",
				"After three instances of non-compliance, the occupant will be asked to leave.",
			},
		},
		{
			Title: "Lodge Dues and Financial Obligations",
			Rules: []string{
				"Lodgers must pay their stipulated monthly dues promptly.",
				"Dues must be paid before the 10th of each new month.",
				"Failure to pay dues for two consecutive months will result in eviction from the lodge.",
			},
		},
		{
			Title: "Visitors",
			Rules: []string{
				"No visitors are allowed unless approved by the MCAN FCT or authorized management officials.",
				"Occupants must not invite family or friends to retain their space when passing out of NYSC.",
			},
		},
		{
			Title: "Admission Process",
			Rules: []string{
				"Admission involves thorough screening by MCAN officials (Patron, Matron, and Staff Advisers).",
				"Registration with MCAN grants eligibility for lodging, subject to bed space availability.",
				"Each lodger will be given an identification card for proper identification.",
			},
		},
	},
	Consequences: []Consequence{
		{
			Title:   "Warnings and Evictions",
			Content: "Violations will result in warnings, fines, or immediate eviction depending on the severity of the infraction.",
		},
		{
			Title:   "Financial Penalties",
			Content: "Fines may be imposed based on the specific rule violation, particularly for financial obligations.",
		},
		{
			Title:   "Immediate Eviction",
			Content: "Severe violations such as fighting, illegal activities, and prolonged non-compliance will result in immediate eviction from the lodge.",
		},
	},
}
