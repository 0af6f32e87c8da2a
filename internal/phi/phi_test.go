// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package phi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantClasses []string
	}{
		{
			name: "clean clinical note",
			text: "Patient has type 2 diabetes with poor glycaemic control, on metformin.",
		},
		{
			name:        "titled name",
			text:        "Dr. Smith examined the patient today.",
			wantClasses: []string{"names"},
		},
		{
			name:        "numeric date",
			text:        "Patient seen on 01/15/2024 for follow-up.",
			wantClasses: []string{"dates"},
		},
		{
			name:        "long-form date",
			text:        "Admitted on January 15, 2024 with chest pain.",
			wantClasses: []string{"dates"},
		},
		{
			name:        "phone number",
			text:        "Contact at (555) 123-4567 for results.",
			wantClasses: []string{"phone"},
		},
		{
			name:        "medical record number",
			text:        "See chart MRN: 1234567 for history.",
			wantClasses: []string{"mrn"},
		},
		{
			name:        "street address",
			text:        "Lives at 123 Main Street with family.",
			wantClasses: []string{"addresses"},
		},
		{
			name:        "email address",
			text:        "Reach the patient at patient@example.com for scheduling.",
			wantClasses: []string{"email"},
		},
		{
			name:        "social security number",
			text:        "SSN on file: 123-45-6789.",
			wantClasses: []string{"ssn"},
		},
		{
			name:        "aadhaar number",
			text:        "ID 1234 5678 9012 presented at admission.",
			wantClasses: []string{"aadhaar"},
		},
		{
			name:        "pan number",
			text:        "Billing PAN ABCDE1234F recorded.",
			wantClasses: []string{"pan_number"},
		},
		{
			name:        "ip address",
			text:        "Portal login from 192.168.1.100 yesterday.",
			wantClasses: []string{"ip_address"},
		},
		{
			name:        "multiple classes",
			text:        "Mr. Doe, seen 01/15/2024, call (555) 123-4567.",
			wantClasses: []string{"names", "dates", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detected, classes := Detect(tt.text)
			if len(tt.wantClasses) == 0 {
				assert.False(t, detected)
				assert.Empty(t, classes)
				return
			}
			assert.True(t, detected)
			assert.Equal(t, tt.wantClasses, classes)
		})
	}
}

func TestDetectEachClassOnce(t *testing.T) {
	detected, classes := Detect("Seen 01/15/2024 and again 02/20/2024 and on March 3, 2024.")
	assert.True(t, detected)
	assert.Equal(t, []string{"dates"}, classes)
}
