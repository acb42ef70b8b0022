package extractor

import "strings"

// PassportSchemaKeys are the keys of the JSON object the model is asked to
// return, in schema order.
var PassportSchemaKeys = []string{
	"first_name",
	"last_name",
	"Date of Birth",
	"Date of Issue",
	"Nationality",
	"place of passport issuance",
	"middle name",
	"gender",
	"place of birth",
	"issuing authority",
	"Date of Expiry",
	"passport_number",
	"personal_number",
	"document_number",
}

// schemaHints pre-fills example values for keys where the format matters.
var schemaHints = map[string]string{
	"gender": "male/female",
}

// PassportPrompt is the extraction instruction sent with every image.
var PassportPrompt = BuildPassportPrompt()

// BuildPassportPrompt returns the extraction prompt for passport images.
func BuildPassportPrompt() string {
	var b strings.Builder
	b.WriteString(`You are a strict data extraction API. Your ONLY purpose is to extract information from the provided passport image and return a raw JSON object. And PLEASE DON'T THINK MUCH

Extract the following information:
- First Name
- Last Name
- Passport Number
- Date of Birth
- Date of Issue
- Nationality
- place of passport issuance
- middle name
- gender
- place of birth
- issuing authority
- Date of Expiry
- Personal Number (if available)
- Document Number (if available)

CRITICAL INSTRUCTIONS:
1. DO NOT describe the image.
2. DO NOT include any conversational text, preamble, or explanations.
3. DO NOT use markdown formatting (no ` + "```json" + `).
4. Your entire response MUST start with '{' and end with '}'.

Use exactly this JSON schema:
{
`)
	for i, key := range PassportSchemaKeys {
		b.WriteString(`    "` + key + `": "` + schemaHints[key] + `"`)
		if i < len(PassportSchemaKeys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
