package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMaintenanceLogRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateMaintenanceLogRequest
		wantErr string
	}{
		{
			name: "valid request",
			req: CreateMaintenanceLogRequest{
				AssetID:     "a-1",
				Action:      "RAM upgrade",
				Description: "Replaced 16GB module with 32GB.",
				RAMDetails:  stringPtr("32GB DDR5"),
				TestResult:  stringPtr(TestResultPass),
			},
			wantErr: "",
		},
		{
			name: "missing asset",
			req: CreateMaintenanceLogRequest{
				Action:      "Cleaning",
				Description: "Dusted the fans.",
			},
			wantErr: "asset_id is required",
		},
		{
			name: "missing action",
			req: CreateMaintenanceLogRequest{
				AssetID:     "a-1",
				Description: "Dusted the fans.",
			},
			wantErr: "action is required",
		},
		{
			name: "missing description",
			req: CreateMaintenanceLogRequest{
				AssetID: "a-1",
				Action:  "Cleaning",
			},
			wantErr: "description is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCreateMaintenanceLogRequest_Validate_DropsBlankOptionals(t *testing.T) {
	req := CreateMaintenanceLogRequest{
		AssetID:     "a-1",
		Action:      "Inspection",
		Description: "Routine check.",
		RAMDetails:  stringPtr("  "),
		TestResult:  stringPtr(""),
	}
	require.NoError(t, req.Validate())
	assert.Nil(t, req.RAMDetails)
	assert.Nil(t, req.TestResult)
}
