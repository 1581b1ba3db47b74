package schema

// Category is an entry of the fixed OCSF category catalog, keyed by tag.
type Category struct {
	Name        string `json:"name"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

var catalog = []Category{
	{Name: "system", Caption: "System Activity", Description: "Operating system and device-level events"},
	{Name: "findings", Caption: "Findings", Description: "Security findings from scanning, detection, and analysis"},
	{Name: "iam", Caption: "Identity & Access Management", Description: "Authentication, authorization, and account management"},
	{Name: "network", Caption: "Network Activity", Description: "Network connections and traffic"},
	{Name: "discovery", Caption: "Discovery", Description: "Resource and asset discovery"},
	{Name: "application", Caption: "Application Activity", Description: "Application-specific events"},
	{Name: "remediation", Caption: "Remediation", Description: "Security remediation activities"},
	{Name: "other", Caption: "Other", Description: "Miscellaneous events"},
}

// LookupCategory finds a catalog entry by tag.
func LookupCategory(name string) (Category, bool) {
	for _, c := range catalog {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryDescription renders the human description for a category tag.
// Unknown tags render as "Category: <tag>".
func CategoryDescription(name string) string {
	if c, ok := LookupCategory(name); ok {
		return c.Caption + " - " + c.Description
	}
	return "Category: " + name
}
