// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus provides the built-in demo evidence collection and a YAML
// loader for user-supplied corpora.
package corpus

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/evidence-engine/pkg/types"
)

// Demo returns the built-in synthetic literature collection: six documents
// covering the chronic-care topics the demo embedder clusters on. Safe to
// mutate; each call returns a fresh slice.
func Demo() []types.Document {
	docs := make([]types.Document, len(demoDocuments))
	copy(docs, demoDocuments)
	return docs
}

// corpusFile is the YAML schema for user-supplied corpora.
type corpusFile struct {
	Documents []types.Document `yaml:"documents"`
}

// LoadFile reads a YAML corpus from path. Every document must carry a
// title and content; missing identifiers are tolerated.
func LoadFile(path string) ([]types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	if len(file.Documents) == 0 {
		return nil, types.NewInputError("corpus file %s contains no documents", path)
	}
	for i, doc := range file.Documents {
		if doc.Title == "" || doc.Content == "" {
			return nil, types.NewInputError("corpus document %d is missing a title or content", i)
		}
	}
	return file.Documents, nil
}

var demoDocuments = []types.Document{
	{
		Title:   "Evidence-Based Management of Type 2 Diabetes Mellitus in Primary Care Settings",
		PMCID:   "PMC8901234",
		DOI:     "10.1000/diabetes.2023.001",
		Content: "Type 2 diabetes mellitus management requires individualized glycemic targets. Metformin remains first-line therapy for most patients with T2DM unless contraindicated. HbA1c monitoring every 3 months guides treatment intensification. Lifestyle interventions including diet and exercise reduce cardiovascular risk. SGLT2 inhibitors and GLP-1 agonists provide cardiovascular and renal protection.",
		Snippet: "Type 2 diabetes mellitus (T2DM) is a chronic metabolic disorder characterized by hyperglycemia resulting from insulin resistance and progressive beta-cell dysfunction. Management requires a patient-centered approach with individualized glycemic targets.",
	},
	{
		Title:   "Hypertension Control Strategies: A Systematic Review of Non-Pharmacological and Pharmacological Interventions",
		PMCID:   "PMC8901235",
		DOI:     "10.1000/hypertension.2023.002",
		Content: "Hypertension management combines lifestyle modification with pharmacotherapy. ACE inhibitors and ARBs are preferred in diabetic patients with hypertension. Target blood pressure below 130/80 mmHg reduces cardiovascular events. Regular monitoring and medication adherence are essential for blood pressure control. Amlodipine and thiazide diuretics are effective first-line agents.",
		Snippet: "Hypertension affects approximately 1.3 billion people worldwide and is a major risk factor for cardiovascular disease, stroke, and chronic kidney disease. Effective blood pressure control requires both pharmacological and non-pharmacological strategies.",
	},
	{
		Title:   "Respiratory Disease Management: COPD, Asthma, and Pneumonia Clinical Guidelines",
		PMCID:   "PMC8901236",
		DOI:     "10.1000/respiratory.2023.003",
		Content: "COPD management uses bronchodilators and inhaled corticosteroids to reduce exacerbations. Asthma step therapy begins with short-acting beta-agonists and escalates with severity. Spirometry is essential for diagnosis and monitoring of obstructive lung disease. Smoking cessation is the most effective intervention for COPD progression. Oxygen therapy is indicated when SpO2 falls below 88 percent.",
		Snippet: "Chronic obstructive pulmonary disease and asthma represent the most common obstructive respiratory conditions. Evidence-based management reduces hospitalization rates and improves quality of life through structured pharmacotherapy.",
	},
	{
		Title:   "Lifestyle Interventions for Prevention and Management of Non-Communicable Diseases",
		PMCID:   "PMC8901237",
		DOI:     "10.1000/lifestyle.2023.004",
		Content: "Regular physical activity of 150 minutes per week reduces diabetes and cardiovascular risk. Mediterranean and low-glycemic-index diets improve metabolic parameters in T2DM. Weight loss of 5 to 10 percent body weight significantly improves insulin sensitivity. Smoking cessation reduces cardiovascular mortality by 50 percent within one year. Stress reduction and sleep hygiene are underutilized components of chronic disease management.",
		Snippet: "Non-communicable diseases including diabetes, hypertension, and cardiovascular disease share common modifiable risk factors amenable to lifestyle interventions. Evidence demonstrates significant benefit from structured diet, exercise, and behavioral change programs.",
	},
	{
		Title:   "Medication Adherence in Chronic Disease Management: Barriers and Interventions",
		PMCID:   "PMC8901238",
		DOI:     "10.1000/adherence.2023.005",
		Content: "Medication non-adherence affects 50 percent of patients with chronic conditions. Simplified dosing regimens and pill organizers improve adherence rates. Patient education about medication purpose and side effects increases compliance. Regular follow-up appointments are associated with higher medication adherence. Fixed-dose combination therapy reduces pill burden and improves outcomes.",
		Snippet: "Medication non-adherence is a major barrier to effective chronic disease management, with approximately 50 percent of patients not taking medications as prescribed. Structured interventions including reminders and education improve adherence significantly.",
	},
	{
		Title:   "Patient Education and Health Literacy in Chronic Disease Self-Management",
		PMCID:   "PMC8901239",
		DOI:     "10.1000/education.2023.006",
		Content: "Health literacy strongly predicts self-management behaviors in chronic disease. Teach-back methods improve patient understanding of discharge instructions. Visual aids and simplified language enhance comprehension in low-literacy populations. Peer support programs improve diabetes self-management in South Asian populations. Digital health tools and mobile apps support remote monitoring and patient engagement.",
		Snippet: "Effective patient education is fundamental to chronic disease self-management, empowering patients to actively participate in their care and make informed decisions. Health literacy, defined as the ability to obtain and understand health information, is a key determinant of outcomes.",
	},
}
