package usecase

import "strings"

// Conversation topics a capability can steer the planner towards next.
const (
	TopicLeadCapture = "lead_capture"
	TopicProductInfo = "product_info"
	TopicSupport     = "support"
	TopicClosing     = "closing"
)

// Brochure artifact identifiers understood by the front ends.
const (
	BrochureEasyPlus  = "easy+"
	BrochureInnovPlus = "innov+"
	BrochureDuraPlus  = "dura+"
	BrochureCompany   = "company"
)

const companyInfo = `PARÉ is a leading manufacturer of innovative decorative surfaces for walls, ceilings, and facades.
We serve both residential and commercial projects across India.`

const productOverview = `PARE offers a wide range of decorative panels to enhance walls, ceilings, and facades.
Our products are designed for easy installation, durability, and aesthetic appeal.`

const wallProducts = `PARE has an excellent selection of wall options, you may select from:
Linea, Pyramid, Arch which have wooden, marble and pastel shades`

const ceilingProducts = `PARE has an excellent selection of ceiling options, you may select from:
Soffit, duo and louver panels which have wooden, marble and pastel shades`

const facadeProducts = `PARE has an excellent selection of facade options, you may select from:
Norma and Stretta panels`

const allProducts = `PARE has an excellent selection for all, please check the company brochure
for any products if it sparks up any ideas for you`

const pricingInfo = `Our pricing starts from ₹195 - ₹350 per sq.ft., depending on the product and finish.
Would you like a detailed quotation based on your specific requirements?`

const callbackRequest = `I can have one of our customer support specialists reach out to you for a detailed discussion.
Would you prefer a call or a WhatsApp message?`

const whatsappConfirm = "We'll arrange for a WhatsApp message from our customer support team soon."

const siteVisitRequest = `We'd be happy to arrange a site visit after price confirmation.
Would you like to proceed with a quotation first, so we can tailor the best solution for your needs?`

const closingMessage = `Thank you for reaching out to PARE India! I'll ensure that our team follows up with the required details.
Let us know if you need any additional support. Have a great day!`

const captureCompleteMessage = "Thank you for sharing your details. This will help us offer the best recommendations and support for your project."

const unknownCategoryMessage = "I didn't catch that area. Are you looking at walls, ceilings, facades, or all of them?"

const unknownSupportMessage = "I can arrange a callback, a WhatsApp message, or a site visit. Which would suit you best?"

var specificProducts = map[string]string{
	"soffit": "Ideal for ceilings, offering a real wood appearance with a maintenance-free finish. Perfect for outdoor and indoor applications.",
	"easy+":  "Wall panels that can be directly screwed onto walls, eliminating the need for plywood. Available in multiple shades and textures.",
	"dura+":  "A robust façade solution that ensures long-lasting durability, UV resistance, and a wooden aesthetic.",
	"baffle": "A unique ceiling system that is lightweight, fire-retardant, and water-resistant, offering a sophisticated look to interiors.",
}

// CategoryInfo maps a product category to its description and brochure.
// Unknown categories get an explicit clarifying message instead of blank text.
func CategoryInfo(category string) (message, brochure string) {
	switch strings.ToLower(category) {
	case "wall":
		return wallProducts, BrochureEasyPlus
	case "ceiling":
		return ceilingProducts, BrochureInnovPlus
	case "facade":
		return facadeProducts, BrochureDuraPlus
	case "unsure", "all", "none":
		return allProducts, BrochureCompany
	default:
		return unknownCategoryMessage, ""
	}
}

// SpecificProductInfo returns the description of a known product, or "" when
// the product is not in the catalogue.
func SpecificProductInfo(product string) string {
	return specificProducts[strings.ToLower(product)]
}

func CompanyInfo() string     { return companyInfo }
func ProductOverview() string { return productOverview }
func PricingInfo() string     { return pricingInfo }
func ClosingMessage() string  { return closingMessage }
