package reference

// Built-in reference tables. These are the service's working "database":
// small, curated, and compiled in. The scheduler may layer fresh recall
// notices from the regulatory registry on top of recallTable, but the
// entries below are always retained.

var interactionTable = []InteractionRecord{
	{
		DrugA:                "warfarin",
		DrugB:                "aspirin",
		Severity:             SeverityDangerous,
		Mechanism:            "Additive anticoagulant and antiplatelet effect",
		ClinicalSignificance: "Major bleeding risk, including GI and intracranial hemorrhage",
		Recommendation:       "Avoid combination unless specifically indicated and supervised",
		Monitoring:           "INR, hemoglobin, signs of bleeding",
		Alternatives:         "Consider paracetamol for analgesia",
		Confidence:           ConfidenceHigh,
	},
	{
		DrugA:                "warfarin",
		DrugB:                "ibuprofen",
		Severity:             SeverityDangerous,
		Mechanism:            "NSAID platelet inhibition plus anticoagulation",
		ClinicalSignificance: "Markedly increased GI bleeding risk",
		Recommendation:       "Avoid NSAIDs in anticoagulated patients",
		Monitoring:           "INR, stool occult blood",
		Alternatives:         "Paracetamol preferred for pain",
		Confidence:           ConfidenceHigh,
	},
	{
		DrugA:                "aspirin",
		DrugB:                "ibuprofen",
		Severity:             SeverityCaution,
		Mechanism:            "Ibuprofen competes for the COX-1 binding site",
		ClinicalSignificance: "May blunt the cardioprotective effect of low-dose aspirin",
		Recommendation:       "Separate dosing: ibuprofen at least 8 hours before or 30 minutes after aspirin",
		Monitoring:           "Cardiovascular symptoms",
		Alternatives:         "Paracetamol for occasional analgesia",
		Confidence:           ConfidenceMedium,
	},
	{
		DrugA:                "lisinopril",
		DrugB:                "ibuprofen",
		Severity:             SeverityCaution,
		Mechanism:            "NSAID-induced reduction of renal prostaglandins",
		ClinicalSignificance: "Reduced antihypertensive effect and risk of acute kidney injury",
		Recommendation:       "Limit NSAID duration; prefer paracetamol",
		Monitoring:           "Blood pressure, serum creatinine, potassium",
		Alternatives:         "Paracetamol",
		Confidence:           ConfidenceMedium,
	},
	{
		DrugA:                "omeprazole",
		DrugB:                "clopidogrel",
		Severity:             SeverityDangerous,
		Mechanism:            "CYP2C19 inhibition reduces clopidogrel activation",
		ClinicalSignificance: "Diminished antiplatelet effect, higher thrombotic event rate",
		Recommendation:       "Switch to pantoprazole or famotidine",
		Monitoring:           "Cardiovascular events",
		Alternatives:         "Pantoprazole, famotidine",
		Confidence:           ConfidenceMedium,
	},
	{
		DrugA:                "simvastatin",
		DrugB:                "amlodipine",
		Severity:             SeverityCaution,
		Mechanism:            "CYP3A4 competition raises simvastatin exposure",
		ClinicalSignificance: "Increased risk of myopathy at high statin doses",
		Recommendation:       "Cap simvastatin at 20mg daily with amlodipine",
		Monitoring:           "Muscle pain, creatine kinase",
		Alternatives:         "Rosuvastatin is not CYP3A4 dependent",
		Confidence:           ConfidenceHigh,
	},
	{
		DrugA:                "sertraline",
		DrugB:                "tramadol",
		Severity:             SeverityDangerous,
		Mechanism:            "Additive serotonergic activity",
		ClinicalSignificance: "Serotonin syndrome; seizure threshold lowered",
		Recommendation:       "Avoid combination; choose a non-serotonergic analgesic",
		Monitoring:           "Agitation, hyperthermia, clonus",
		Alternatives:         "Paracetamol, naproxen",
		Confidence:           ConfidenceHigh,
	},
	{
		DrugA:                "metformin",
		DrugB:                "lisinopril",
		Severity:             SeveritySafe,
		Mechanism:            "No clinically relevant pharmacokinetic overlap",
		ClinicalSignificance: "Commonly co-prescribed in diabetic hypertensive patients",
		Recommendation:       "No change needed",
		Monitoring:           "Routine renal function",
		Alternatives:         "",
		Confidence:           ConfidenceHigh,
	},
	{
		DrugA:                "levothyroxine",
		DrugB:                "omeprazole",
		Severity:             SeverityCaution,
		Mechanism:            "Raised gastric pH reduces levothyroxine absorption",
		ClinicalSignificance: "May lower thyroid hormone levels over weeks",
		Recommendation:       "Separate administration; recheck TSH after starting PPI",
		Monitoring:           "TSH at 6-8 weeks",
		Alternatives:         "Famotidine if acid suppression is short-term",
		Confidence:           ConfidenceMedium,
	},
	{
		DrugA:                "furosemide",
		DrugB:                "lisinopril",
		Severity:             SeverityCaution,
		Mechanism:            "Volume depletion potentiates first-dose hypotension",
		ClinicalSignificance: "Symptomatic hypotension and renal impairment possible",
		Recommendation:       "Start ACE inhibitor at low dose; monitor closely",
		Monitoring:           "Blood pressure, creatinine, electrolytes",
		Alternatives:         "",
		Confidence:           ConfidenceMedium,
	},
}

var dosageTable = []DosageProfile{
	{Drug: "metformin", StandardDose: "500mg BID", MaxDailyDose: "2000mg/day", WeightSensitive: false},
	{Drug: "lisinopril", StandardDose: "10mg daily", MaxDailyDose: "40mg/day", PregnancyContraindicated: true},
	{Drug: "warfarin", StandardDose: "5mg daily", MaxDailyDose: "10mg/day", WeightSensitive: true, PregnancyContraindicated: true},
	{Drug: "aspirin", StandardDose: "81mg daily", MaxDailyDose: "325mg/day for cardioprotection"},
	{Drug: "paracetamol", StandardDose: "500mg every 6 hours", MaxDailyDose: "4000mg/day"},
	{Drug: "ibuprofen", StandardDose: "400mg TID", MaxDailyDose: "2400mg/day", PregnancyContraindicated: true},
	{Drug: "amoxicillin", StandardDose: "500mg TID", MaxDailyDose: "3000mg/day", WeightSensitive: true},
	{Drug: "atorvastatin", StandardDose: "20mg daily", MaxDailyDose: "80mg/day", PregnancyContraindicated: true},
	{Drug: "simvastatin", StandardDose: "20mg daily", MaxDailyDose: "40mg/day", PregnancyContraindicated: true},
	{Drug: "omeprazole", StandardDose: "20mg daily", MaxDailyDose: "40mg/day"},
	{Drug: "amlodipine", StandardDose: "5mg daily", MaxDailyDose: "10mg/day"},
	{Drug: "sertraline", StandardDose: "50mg daily", MaxDailyDose: "200mg/day"},
	{Drug: "tramadol", StandardDose: "50mg every 6 hours", MaxDailyDose: "400mg/day", WeightSensitive: true},
	{Drug: "levothyroxine", StandardDose: "100mcg daily", MaxDailyDose: "200mcg/day", WeightSensitive: true},
	{Drug: "furosemide", StandardDose: "40mg daily", MaxDailyDose: "600mg/day"},
	{Drug: "gabapentin", StandardDose: "300mg TID", MaxDailyDose: "3600mg/day", WeightSensitive: true},
	{Drug: "prednisone", StandardDose: "10mg daily", MaxDailyDose: "60mg/day"},
	{Drug: "clopidogrel", StandardDose: "75mg daily", MaxDailyDose: "75mg/day"},
}

var alternativesCatalog = map[string][]AlternativeOption{
	"aspirin": {
		{Name: "clopidogrel", Reason: "Antiplatelet without aspirin's GI toxicity", Contraindications: []string{"active bleeding", "severe hepatic impairment"}, MinimumAge: 18, Confidence: 0.85},
		{Name: "ticagrelor", Reason: "Reversible antiplatelet for acute coronary syndromes", Contraindications: []string{"active bleeding", "history of intracranial hemorrhage"}, MinimumAge: 18, Confidence: 0.75},
		{Name: "paracetamol", Reason: "Analgesic substitution when antiplatelet effect is not required", Contraindications: []string{"severe liver disease"}, MinimumAge: 12, Confidence: 0.7},
	},
	"warfarin": {
		{Name: "apixaban", Reason: "Direct oral anticoagulant, no INR monitoring", Contraindications: []string{"severe renal impairment", "mechanical heart valve"}, MinimumAge: 18, Confidence: 0.9},
		{Name: "rivaroxaban", Reason: "Once-daily direct factor Xa inhibitor", Contraindications: []string{"severe renal impairment", "active bleeding"}, MinimumAge: 18, Confidence: 0.85},
		{Name: "dabigatran", Reason: "Direct thrombin inhibitor with a reversal agent", Contraindications: []string{"severe renal impairment", "mechanical heart valve"}, MinimumAge: 18, Confidence: 0.8},
	},
	"ibuprofen": {
		{Name: "naproxen", Reason: "Longer-acting NSAID with twice-daily dosing", Contraindications: []string{"peptic ulcer", "severe renal impairment", "heart failure"}, MinimumAge: 12, Confidence: 0.8},
		{Name: "paracetamol", Reason: "Analgesic without NSAID GI and renal risks", Contraindications: []string{"severe liver disease"}, MinimumAge: 6, Confidence: 0.85},
		{Name: "celecoxib", Reason: "COX-2 selective, lower GI bleeding risk", Contraindications: []string{"sulfonamide allergy", "ischemic heart disease"}, MinimumAge: 18, Confidence: 0.7},
	},
	"metformin": {
		{Name: "sitagliptin", Reason: "DPP-4 inhibitor, weight neutral, low hypoglycemia risk", Contraindications: []string{"pancreatitis"}, MinimumAge: 18, Confidence: 0.8},
		{Name: "glipizide", Reason: "Sulfonylurea when metformin is not tolerated", Contraindications: []string{"severe hepatic impairment", "sulfonamide allergy"}, MinimumAge: 18, Confidence: 0.7},
	},
	"omeprazole": {
		{Name: "pantoprazole", Reason: "PPI with minimal CYP2C19 interaction", Contraindications: []string{"severe liver disease"}, MinimumAge: 18, Confidence: 0.85},
		{Name: "famotidine", Reason: "H2 blocker when PPI-class effects are unwanted", Contraindications: []string{"severe renal impairment"}, MinimumAge: 12, Confidence: 0.75},
	},
	"lisinopril": {
		{Name: "losartan", Reason: "ARB for ACE-inhibitor cough", Contraindications: []string{"pregnancy", "bilateral renal artery stenosis"}, MinimumAge: 18, Confidence: 0.85},
		{Name: "amlodipine", Reason: "Calcium channel blocker, different mechanism", Contraindications: []string{"severe aortic stenosis", "cardiogenic shock"}, MinimumAge: 18, Confidence: 0.8},
	},
	"sertraline": {
		{Name: "escitalopram", Reason: "SSRI with fewer drug interactions", Contraindications: []string{"long QT syndrome"}, MinimumAge: 12, Confidence: 0.8},
		{Name: "mirtazapine", Reason: "Different mechanism when SSRIs fail or interact", Contraindications: []string{"severe hepatic impairment"}, MinimumAge: 18, Confidence: 0.65},
	},
	"ranitidine": {
		{Name: "famotidine", Reason: "H2 blocker without NDMA impurity findings", Contraindications: []string{"severe renal impairment"}, MinimumAge: 12, Confidence: 0.9},
		{Name: "omeprazole", Reason: "PPI substitution for acid suppression", Contraindications: []string{"severe liver disease"}, MinimumAge: 18, Confidence: 0.8},
	},
}

// riskRules raise an alternative candidate's interaction risk when the
// patient's current medications mention the interacting term.
var riskRules = []InteractionRiskRule{
	{Candidate: "clopidogrel", InteractingTerm: "omeprazole", Risk: RiskHigh},
	{Candidate: "clopidogrel", InteractingTerm: "warfarin", Risk: RiskHigh},
	{Candidate: "ticagrelor", InteractingTerm: "simvastatin", Risk: RiskMedium},
	{Candidate: "apixaban", InteractingTerm: "aspirin", Risk: RiskHigh},
	{Candidate: "apixaban", InteractingTerm: "ibuprofen", Risk: RiskHigh},
	{Candidate: "rivaroxaban", InteractingTerm: "aspirin", Risk: RiskHigh},
	{Candidate: "dabigatran", InteractingTerm: "aspirin", Risk: RiskHigh},
	{Candidate: "naproxen", InteractingTerm: "warfarin", Risk: RiskHigh},
	{Candidate: "naproxen", InteractingTerm: "lisinopril", Risk: RiskMedium},
	{Candidate: "celecoxib", InteractingTerm: "warfarin", Risk: RiskMedium},
	{Candidate: "paracetamol", InteractingTerm: "warfarin", Risk: RiskMedium},
	{Candidate: "glipizide", InteractingTerm: "warfarin", Risk: RiskMedium},
	{Candidate: "escitalopram", InteractingTerm: "tramadol", Risk: RiskHigh},
	{Candidate: "losartan", InteractingTerm: "spironolactone", Risk: RiskMedium},
}

var recallTable = []RecallNotice{
	{
		Drug:           "ranitidine",
		Status:         StatusRecalled,
		Reason:         "NDMA impurity above the acceptable daily intake limit",
		Authority:      "FDA",
		Recommendation: "Stop use; switch to famotidine or a PPI after consulting a clinician",
	},
	{
		Drug:           "valsartan",
		Status:         StatusPartialRecall,
		Reason:         "Nitrosamine impurities in specific manufacturer lots",
		Authority:      "FDA",
		Recommendation: "Check lot number; do not stop therapy before a replacement is arranged",
	},
	{
		Drug:           "phenylpropanolamine",
		Status:         StatusRecalled,
		Reason:         "Increased risk of hemorrhagic stroke",
		Authority:      "FDA",
		Recommendation: "Discontinue; use an alternative decongestant",
	},
	{
		Drug:           "sibutramine",
		Status:         StatusRecalled,
		Reason:         "Increased cardiovascular event rate",
		Authority:      "FDA",
		Recommendation: "Discontinue and discuss weight-management alternatives",
	},
	{
		Drug:           "lorcaserin",
		Status:         StatusRecalled,
		Reason:         "Possible increased cancer risk in long-term trial data",
		Authority:      "FDA",
		Recommendation: "Stop use and dispose of remaining supply",
	},
}

var vocabularyTable = []VocabularyEntry{
	{Canonical: "paracetamol", Synonyms: []string{"acetaminophen", "tylenol", "panadol"}},
	{Canonical: "ibuprofen", Synonyms: []string{"advil", "motrin", "brufen"}},
	{Canonical: "aspirin", Synonyms: []string{"acetylsalicylic acid", "asa", "disprin"}},
	{Canonical: "warfarin", Synonyms: []string{"coumadin", "jantoven"}},
	{Canonical: "metformin", Synonyms: []string{"glucophage"}},
	{Canonical: "lisinopril", Synonyms: []string{"prinivil", "zestril"}},
	{Canonical: "atorvastatin", Synonyms: []string{"lipitor"}},
	{Canonical: "simvastatin", Synonyms: []string{"zocor"}},
	{Canonical: "omeprazole", Synonyms: []string{"prilosec", "losec"}},
	{Canonical: "amlodipine", Synonyms: []string{"norvasc"}},
	{Canonical: "amoxicillin", Synonyms: []string{"amoxil"}},
	{Canonical: "clopidogrel", Synonyms: []string{"plavix"}},
	{Canonical: "sertraline", Synonyms: []string{"zoloft"}},
	{Canonical: "tramadol", Synonyms: []string{"ultram"}},
	{Canonical: "levothyroxine", Synonyms: []string{"synthroid", "euthyrox"}},
	{Canonical: "furosemide", Synonyms: []string{"lasix"}},
	{Canonical: "prednisone", Synonyms: []string{"deltasone"}},
	{Canonical: "gabapentin", Synonyms: []string{"neurontin"}},
	{Canonical: "ranitidine", Synonyms: []string{"zantac"}},
	{Canonical: "valsartan", Synonyms: []string{"diovan"}},
}

// safetyGuidelines is the static guidance returned alongside alternative
// suggestions.
var safetyGuidelines = []string{
	"Never change or stop a prescribed medication without consulting the prescriber.",
	"Bring a complete medication list, including over-the-counter drugs, to every appointment.",
	"Report new symptoms after any medication switch within the first two weeks.",
	"Check for duplicate active ingredients when combining brand and generic products.",
}
