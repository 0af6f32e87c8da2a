// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import "github.com/pdiddy/evidence-engine/pkg/types"

// conditionKeywords drive primary-condition detection for summaries.
// Counts are summed per group, so repeated mentions outweigh a single
// stray keyword from another condition.
var conditionKeywords = map[string][]string{
	"diabetes": {
		"diabetes", "glucose", "hba1c", "metformin", "insulin",
		"hyperglycemi", "glycaemi", "glycemic", "t2dm", "diabetic",
	},
	"hypertension": {
		"hypertension", "blood pressure", "bp:", "amlodipine",
		"antihypertensive", "systolic", "diastolic", "mmhg",
	},
	"respiratory": {
		"respiratory", "asthma", "copd", "breath", "wheez",
		"spirometry", "inhaler", "bronch", "pulmon", "oxygen",
		"spo2", "dyspnoea", "dyspnea", "cough",
	},
	"lipid": {
		"lipid", "cholesterol", "statin", "dyslipidemia",
		"triglyceride", "ldl", "hdl",
	},
}

var actionTemplates = map[string][]types.DraftAction{
	"diabetes": {
		{Text: "Initiate or optimise Metformin therapy as per current glycaemic targets", Category: types.CategoryMedication, Severity: types.SeverityHigh},
		{Text: "Order HbA1c test to assess 3-month glycaemic control", Category: types.CategoryDiagnostic, Severity: types.SeverityHigh},
		{Text: "Refer to ophthalmology for diabetic retinopathy screening", Category: types.CategoryFollowup, Severity: types.SeverityMedium},
		{Text: "Dietary counselling with low glycaemic index diet, reduce refined carbohydrates", Category: types.CategoryLifestyle, Severity: types.SeverityMedium},
	},
	"hypertension": {
		{Text: "Review and optimise antihypertensive regimen; target BP below 130/80 mmHg", Category: types.CategoryTreatment, Severity: types.SeverityHigh},
		{Text: "Arrange 24-hour ambulatory blood pressure monitoring to assess control", Category: types.CategoryDiagnostic, Severity: types.SeverityHigh},
		{Text: "Assess renal function and electrolytes with U&E and eGFR within 2 weeks", Category: types.CategoryDiagnostic, Severity: types.SeverityMedium},
		{Text: "Structured lifestyle intervention: sodium restriction below 2g/day, DASH diet", Category: types.CategoryLifestyle, Severity: types.SeverityMedium},
	},
	"respiratory": {
		{Text: "Optimise bronchodilator therapy per GINA/GOLD step guidelines", Category: types.CategoryMedication, Severity: types.SeverityHigh},
		{Text: "Perform spirometry with reversibility testing for objective lung function assessment", Category: types.CategoryDiagnostic, Severity: types.SeverityHigh},
		{Text: "Arrange urgent review if SpO2 falls below 92% or symptoms worsen", Category: types.CategoryFollowup, Severity: types.SeverityHigh},
		{Text: "Reinforce smoking cessation and avoidance of known respiratory triggers", Category: types.CategoryLifestyle, Severity: types.SeverityMedium},
	},
	"lipid": {
		{Text: "Initiate statin therapy for cardiovascular risk reduction per ACC/AHA guidelines", Category: types.CategoryMedication, Severity: types.SeverityMedium},
		{Text: "Repeat fasting lipid panel in 6 weeks to assess treatment response", Category: types.CategoryDiagnostic, Severity: types.SeverityMedium},
		{Text: "Mediterranean diet counselling to reduce LDL and cardiovascular risk", Category: types.CategoryLifestyle, Severity: types.SeverityMedium},
		{Text: "Calculate 10-year ASCVD risk score to guide treatment intensity", Category: types.CategoryDiagnostic, Severity: types.SeverityMedium},
	},
}

var summaryTemplates = map[string]string{
	"diabetes": "Patient presents with Type 2 Diabetes Mellitus requiring structured glycaemic management. " +
		"Elevated fasting glucose and HbA1c indicate suboptimal metabolic control requiring pharmacotherapy review. " +
		"Metformin optimisation and dietary modification are first-line interventions. " +
		"Screening for microvascular complications including retinopathy and nephropathy is indicated. " +
		"Follow-up in 2 to 4 weeks to assess medication tolerance and glycaemic response is recommended.",
	"hypertension": "Patient presents with Hypertension with suboptimal blood pressure control. " +
		"Sustained elevated readings indicate need for antihypertensive therapy review and optimisation. " +
		"Target blood pressure below 130/80 mmHg is recommended to reduce cardiovascular and renal risk. " +
		"Lifestyle modifications including sodium restriction and regular aerobic exercise are essential adjuncts. " +
		"Renal function monitoring and ambulatory BP assessment should be arranged within 2 weeks.",
	"respiratory": "Patient presents with Chronic Respiratory Disease with symptoms indicating suboptimal disease control. " +
		"Objective spirometry assessment is required to guide pharmacotherapy decisions. " +
		"Inhaler technique review and step-up of bronchodilator therapy should be considered. " +
		"Trigger avoidance, smoking cessation support, and written action plan provision are priorities. " +
		"Urgent review criteria and escalation pathway should be clearly communicated to the patient.",
	"lipid": "Patient presents with Dyslipidaemia conferring elevated cardiovascular risk. " +
		"Fasting lipid profile indicates need for pharmacological and lifestyle intervention. " +
		"Statin therapy initiation should be guided by absolute cardiovascular risk calculation. " +
		"Dietary modification with Mediterranean or portfolio diet approach is recommended. " +
		"Repeat lipid assessment and cardiovascular risk stratification should occur within 6 weeks.",
}

// translationKeywords detect the dominant condition in an English summary
// when choosing a canned translation. Presence-based, unlike the
// frequency scoring used for summaries, because summaries are short.
var translationKeywords = map[string][]string{
	"respiratory":  {"respiratory", "spirometry", "bronchodilator", "inhaler", "breath", "copd", "asthma", "wheez", "lung function"},
	"hypertension": {"antihypertensive", "ambulatory bp", "blood pressure control", "bp below", "sodium restriction"},
	"diabetes":     {"diabetes mellitus", "glycaem", "metformin", "hba1c", "fasting glucose", "diabetic retinopathy"},
}

var translations = map[string]map[string]string{
	"hi": {
		"diabetes": "रोगी को टाइप 2 मधुमेह (डायबिटीज़) है जिसके लिए तुरंत इलाज की जरूरत है। " +
			"खून में शुगर का स्तर सामान्य से अधिक है और HbA1c परीक्षण जरूरी है। " +
			"डॉक्टर ने मेटफॉर्मिन दवाई शुरू करने की सलाह दी है। " +
			"रोजाना 30 मिनट की हल्की कसरत और कम चीनी वाला खाना खाएं। " +
			"2 सप्ताह में दोबारा डॉक्टर से मिलें।",
		"hypertension": "रोगी का रक्तचाप (ब्लड प्रेशर) बहुत अधिक है जिसे नियंत्रित करना जरूरी है। " +
			"लक्ष्य है कि ब्लड प्रेशर 130/80 से कम रहे। " +
			"दवाइयां समय पर लें और नमक का सेवन कम करें। " +
			"रोज सुबह ब्लड प्रेशर मापें और रिकॉर्ड रखें। " +
			"2 सप्ताह में जांच के लिए आएं।",
		"respiratory": "रोगी को सांस लेने में तकलीफ हो रही है और फेफड़ों की जांच जरूरी है। " +
			"इनहेलर का सही तरीके से उपयोग करें जैसा डॉक्टर ने बताया है। " +
			"धूम्रपान तुरंत बंद करें, यह सबसे जरूरी कदम है। " +
			"यदि सांस बहुत कठिन हो जाए तो तुरंत अस्पताल जाएं। " +
			"स्पाइरोमेट्री जांच जल्द करवाएं।",
		"default": "आपकी स्वास्थ्य जांच हो गई है और डॉक्टर ने कुछ सलाह दी है। " +
			"दी गई दवाइयां नियमित रूप से लें। " +
			"खाने-पीने का ध्यान रखें और नियमित व्यायाम करें। " +
			"अगली मुलाकात के लिए समय पर आएं।",
	},
	"ta": {
		"diabetes": "நோயாளிக்கு வகை 2 நீரிழிவு நோய் (டயபட்டீஸ்) இருப்பது கண்டறியப்பட்டுள்ளது. " +
			"இரத்தத்தில் சர்க்கரை அளவு அதிகமாக உள்ளது, உடனடி சிகிச்சை தேவை. " +
			"மெட்ஃபார்மின் மருந்து தொடங்க மருத்துவர் பரிந்துரைத்துள்ளார். " +
			"தினமும் 30 நிமிட நடை மற்றும் குறைந்த சர்க்கரை உணவு அவசியம். " +
			"2 வாரங்களில் மருத்துவரை மீண்டும் சந்தியுங்கள்.",
		"hypertension": "நோயாளியின் இரத்த அழுத்தம் அதிகமாக உள்ளது, இதை கட்டுப்படுத்த வேண்டும். " +
			"இரத்த அழுத்தம் 130/80க்கு கீழ் இருக்க வேண்டும் என்பது குறிக்கோள். " +
			"மருந்துகளை தவறாமல் எடுத்துக்கொள்ளுங்கள், உப்பை குறையுங்கள். " +
			"தினமும் காலையில் இரத்த அழுத்தம் அளவிட்டு பதிவு செய்யுங்கள். " +
			"2 வாரங்களில் பரிசோதனைக்கு வாருங்கள்.",
		"respiratory": "நோயாளிக்கு மூச்சு திணறல் இருக்கிறது, நுரையீரல் பரிசோதனை அவசியம். " +
			"மருத்துவர் கூறியபடி இன்ஹேலரை சரியாக பயன்படுத்துங்கள். " +
			"புகைப்பிடிப்பை உடனடியாக நிறுத்துவது மிக முக்கியம். " +
			"மூச்சு மிகவும் கஷ்டமாக இருந்தால் உடனே மருத்துவமனை செல்லுங்கள். " +
			"ஸ்பைரோமெட்ரி பரிசோதனையை விரைவில் செய்யுங்கள்.",
		"default": "உங்கள் உடல்நல பரிசோதனை முடிந்தது, மருத்துவர் சில அறிவுரைகள் கூறியுள்ளார். " +
			"கொடுக்கப்பட்ட மருந்துகளை தொடர்ந்து சாப்பிடுங்கள். " +
			"சரியான உணவு மற்றும் தினமும் உடற்பயிற்சி செய்யுங்கள். " +
			"அடுத்த சந்திப்புக்கு சரியான நேரத்தில் வாருங்கள்.",
	},
}
