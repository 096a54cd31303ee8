package labels

// InfoRecord is the curated text shown for a disease prediction.
type InfoRecord struct {
	Description string `json:"description"`
	Treatment   string `json:"treatment"`
	Link        string `json:"link"`
}

// HealthyRecord replaces InfoRecord when the top prediction is a healthy class.
type HealthyRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultInfo is returned for any class missing from the curated table.
var DefaultInfo = InfoRecord{
	Description: "Information for this disease is not yet available in our database.",
	Treatment:   "Consult a local agricultural extension for advice.",
	Link:        "https://www.google.com/search",
}

// HealthyInfo is the single message block for healthy predictions.
var HealthyInfo = HealthyRecord{
	Title:       "Plant appears to be Healthy",
	Description: "No disease was detected. Continue to monitor your plant for any signs of stress or disease. Regular care, proper watering, and good nutrition are key to keeping it healthy.",
}

// Info returns the curated record for l, or DefaultInfo when none exists.
// The table covers disease classes only and is intentionally partial.
func Info(l Label) InfoRecord {
	if rec, ok := diseaseInfo[l]; ok {
		return rec
	}
	return DefaultInfo
}

// Curated reports whether l has its own entry in the info table.
func Curated(l Label) bool {
	_, ok := diseaseInfo[l]
	return ok
}

var diseaseInfo = map[Label]InfoRecord{
	"Apple___Apple_scab": {
		Description: "A common fungal disease causing olive-green to brown spots on leaves, fruit, and twigs.",
		Treatment:   "Prune to improve air circulation, remove fallen leaves, and apply fungicides preventatively.",
		Link:        "https://www.google.com/search?q=Apple+scab+disease",
	},
	"Apple___Black_rot": {
		Description: "A fungal disease leading to fruit rot, leaf spots, and cankers on branches.",
		Treatment:   "Prune out infected wood, remove mummified fruit, and apply appropriate fungicides.",
		Link:        "https://www.google.com/search?q=Apple+black+rot",
	},
	"Apple___Cedar_apple_rust": {
		Description: "A fungal disease causing bright yellow-orange spots on leaves and fruit. Requires a nearby cedar or juniper host.",
		Treatment:   "Remove nearby cedar hosts if possible. Apply fungicides during the early spring.",
		Link:        "https://www.google.com/search?q=Cedar+apple+rust",
	},
	"Cherry_(including_sour)___Powdery_mildew": {
		Description: "A fungal disease appearing as white powdery spots on leaves and shoots, which can distort growth.",
		Treatment:   "Ensure good air circulation. Apply fungicides or horticultural oils at the first sign of disease.",
		Link:        "https://www.google.com/search?q=Cherry+powdery+mildew",
	},
	"Corn_(maize)___Cercospora_leaf_spot Gray_leaf_spot": {
		Description: "A fungal disease that causes long, narrow, tan-colored lesions on corn leaves, reducing photosynthetic area.",
		Treatment:   "Use resistant hybrids, practice crop rotation, and apply fungicides when necessary.",
		Link:        "https://www.google.com/search?q=Corn+gray+leaf+spot",
	},
	"Corn_(maize)___Common_rust_": {
		Description: "A fungal disease characterized by cinnamon-brown, powdery pustules on both upper and lower leaf surfaces.",
		Treatment:   "Often minor, but resistant hybrids are available. Fungicides may be needed in severe cases.",
		Link:        "https://www.google.com/search?q=Corn+common+rust",
	},
	"Corn_(maize)___Northern_Leaf_Blight": {
		Description: "A fungal disease creating long, elliptical, grayish-green or tan lesions on corn leaves.",
		Treatment:   "Plant resistant hybrids, manage crop residue, and apply fungicides if the disease is severe.",
		Link:        "https://www.google.com/search?q=Corn+northern+leaf+blight",
	},
	"Grape___Black_rot": {
		Description: "A serious fungal disease of grapes, causing dark, circular lesions on leaves and turning berries into hard, black mummies.",
		Treatment:   "Sanitation is key: remove infected canes and mummified fruit. Apply fungicides throughout the growing season.",
		Link:        "https://www.google.com/search?q=Grape+black+rot",
	},
	"Grape___Esca_(Black_Measles)": {
		Description: "A destructive fungal disease complex causing \"measles-like\" spots on leaves and berries, leading to vine dieback.",
		Treatment:   "Management is difficult. Prune out infected wood during the dormant season. No highly effective chemical controls exist.",
		Link:        "https://www.google.com/search?q=Grape+Esca+(Black+Measles)",
	},
	"Grape___Leaf_blight_(Isariopsis_Leaf_Spot)": {
		Description: "A fungal disease causing irregular dark reddish-brown spots on grape leaves, which can lead to defoliation.",
		Treatment:   "Good air circulation and sanitation help. Fungicide sprays for other diseases often control this as well.",
		Link:        "https://www.google.com/search?q=Grape+Isariopsis+leaf+spot",
	},
	"Orange___Haunglongbing_(Citrus_greening)": {
		Description: "A devastating bacterial disease spread by an insect. It causes blotchy yellow leaves, stunted growth, and bitter, misshapen fruit.",
		Treatment:   "There is no cure. Management focuses on removing infected trees and controlling the insect vector (psyllid).",
		Link:        "https://www.google.com/search?q=Citrus+greening+disease+(Haunglongbing)",
	},
	"Peach___Bacterial_spot": {
		Description: "A bacterial disease causing angular, water-soaked spots on leaves and pitted spots on fruit.",
		Treatment:   "Use resistant varieties. Copper sprays can help reduce spread but may not be fully effective.",
		Link:        "https://www.google.com/search?q=Peach+bacterial+spot",
	},
	"Pepper,_bell___Bacterial_spot": {
		Description: "A bacterial disease causing small, water-soaked spots on leaves that turn brown or black. Can also affect fruit.",
		Treatment:   "Plant disease-free seeds/transplants. Use copper-based bactericides preventatively.",
		Link:        "https://www.google.com/search?q=Pepper+bacterial+spot",
	},
	"Potato___Early_blight": {
		Description: "A fungal disease creating dark, \"target-like\" spots on lower, older leaves of potato plants.",
		Treatment:   "Practice crop rotation, maintain good plant nutrition, and apply fungicides as needed.",
		Link:        "https://www.google.com/search?q=Potato+early+blight",
	},
	"Potato___Late_blight": {
		Description: "A destructive water mold disease causing large, dark, water-soaked lesions on leaves and stems, and can rot tubers.",
		Treatment:   "Requires preventative fungicide applications, especially during cool, moist weather.",
		Link:        "https://www.google.com/search?q=Potato+late+blight",
	},
	"Squash___Powdery_mildew": {
		Description: "A common fungal disease that appears as white, powdery spots on the upper surfaces of squash leaves.",
		Treatment:   "Ensure good air circulation. Apply fungicides, horticultural oil, or neem oil.",
		Link:        "https://www.google.com/search?q=Squash+powdery+mildew",
	},
	"Strawberry___Leaf_scorch": {
		Description: "A fungal disease causing irregular, purplish blotches on leaves that dry up and make the leaf look \"scorched\".",
		Treatment:   "Remove infected leaves after harvest. Use resistant varieties and maintain good air circulation.",
		Link:        "https://www.google.com/search?q=Strawberry+leaf+scorch",
	},
	"Tomato___Bacterial_spot": {
		Description: "A bacterial disease causing small, water-soaked, angular spots on leaves and scabby spots on fruit.",
		Treatment:   "Use disease-free seed, practice crop rotation, and apply copper-based sprays preventatively.",
		Link:        "https://www.google.com/search?q=Tomato+bacterial+spot",
	},
	"Tomato___Early_blight": {
		Description: "A fungal disease resulting in \"target-like\" spots on lower leaves, often leading to a \"collar rot\" lesion on the stem.",
		Treatment:   "Mulch around plants, prune lower leaves, and apply fungicides.",
		Link:        "https://www.google.com/search?q=Tomato+early+blight",
	},
	"Tomato___Late_blight": {
		Description: "A destructive water mold disease causing large, greasy-looking, grey-green spots on leaves that spread rapidly.",
		Treatment:   "Requires immediate action with targeted fungicides. Destroy infected plants to prevent spread.",
		Link:        "https://www.google.com/search?q=Tomato+late+blight",
	},
	"Tomato___Leaf_Mold": {
		Description: "A fungal disease causing pale green or yellowish spots on the upper leaf surface and olive-green to brownish mold on the underside.",
		Treatment:   "Improve air circulation, reduce humidity. Fungicides can be effective. Common in greenhouses.",
		Link:        "https://www.google.com/search?q=Tomato+leaf+mold",
	},
	"Tomato___Septoria_leaf_spot": {
		Description: "A fungal disease causing numerous small, circular spots with dark borders and tan centers on older, lower leaves.",
		Treatment:   "Remove infected lower leaves, mulch plants, and apply fungicides.",
		Link:        "https://www.google.com/search?q=Tomato+Septoria+leaf+spot",
	},
	"Tomato___Spider_mites Two-spotted_spider_mite": {
		Description: "Caused by tiny arachnids, not a disease. Leads to yellow stippling on leaves, fine webbing, and overall plant decline.",
		Treatment:   "Use miticides, insecticidal soaps, or horticultural oils. Strong sprays of water can dislodge them.",
		Link:        "https://www.google.com/search?q=Two-spotted+spider+mite+on+tomato",
	},
	"Tomato___Target_Spot": {
		Description: "A fungal disease causing small, water-soaked spots that develop into larger \"target-like\" lesions on leaves, stems, and fruit.",
		Treatment:   "Improve air circulation, avoid overhead watering, and apply fungicides.",
		Link:        "https://www.google.com/search?q=Tomato+target+spot",
	},
	"Tomato___Tomato_Yellow_Leaf_Curl_Virus": {
		Description: "A viral disease transmitted by whiteflies. Causes severe stunting, upward curling of leaves, and yellowing of leaf margins.",
		Treatment:   "No cure. Control whitefly populations, remove infected plants, and use resistant varieties.",
		Link:        "https://www.google.com/search?q=Tomato+yellow+leaf+curl+virus",
	},
	"Tomato___Tomato_mosaic_virus": {
		Description: "A viral disease causing a light and dark green mosaic pattern on leaves, along with stunting and malformation.",
		Treatment:   "No cure. Remove and destroy infected plants. Practice good sanitation to prevent mechanical spread.",
		Link:        "https://www.google.com/search?q=Tomato+mosaic+virus",
	},
}
