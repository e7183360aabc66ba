package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		doc           *Document
		expectErrors  []string
		expectWarning []string
	}{
		{
			name:         "nil document",
			doc:          nil,
			expectErrors: []string{"document_is_nil"},
		},
		{
			name:         "empty document",
			doc:          &Document{},
			expectErrors: []string{"empty_modules", "empty_nodes"},
		},
		{
			name: "empty module path",
			doc: &Document{
				Modules: map[string]string{"compute": ""},
				Nodes:   map[string]NodeSpec{"lambda": {Category: "compute", ClassName: "Lambda"}},
			},
			expectErrors: []string{"empty_module_path"},
		},
		{
			name: "missing category and class",
			doc: &Document{
				Modules: map[string]string{"compute": "nodes/aws/compute"},
				Nodes:   map[string]NodeSpec{"lambda": {}},
			},
			expectErrors: []string{"missing_category", "missing_class_name"},
		},
		{
			name: "node id must be snake case",
			doc: &Document{
				Modules: map[string]string{"compute": "nodes/aws/compute"},
				Nodes:   map[string]NodeSpec{"Api-Gateway": {Category: "compute", ClassName: "APIGateway"}},
			},
			expectErrors: []string{"invalid_node_id"},
		},
		{
			name: "ids normalizing to the same form warn",
			doc: &Document{
				Modules: map[string]string{"network": "nodes/aws/network"},
				Nodes: map[string]NodeSpec{
					"api_gateway": {Category: "network", ClassName: "APIGateway"},
					"apigateway":  {Category: "network", ClassName: "APIGateway"},
				},
			},
			expectWarning: []string{"ambiguous_node_id"},
		},
		{
			name: "unknown category warns",
			doc: &Document{
				Modules: map[string]string{"network": "nodes/aws/network"},
				Nodes:   map[string]NodeSpec{"vpc": {Category: "networking", ClassName: "VPC"}},
			},
			expectWarning: []string{"unknown_category"},
		},
		{
			name: "provider mismatch",
			doc: &Document{
				Provider: "gcp",
				Modules:  map[string]string{"network": "nodes/aws/network"},
				Nodes:    map[string]NodeSpec{"vpc": {Category: "network", ClassName: "VPC"}},
			},
			expectErrors: []string{"provider_mismatch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.doc, "aws")
			require.NotNil(t, res)

			var errCodes, warnCodes []string
			for _, d := range res.Errors {
				errCodes = append(errCodes, d.Code)
				assert.Equal(t, "aws", d.Provider)
			}

			for _, d := range res.Warnings {
				warnCodes = append(warnCodes, d.Code)
			}

			assert.ElementsMatch(t, tt.expectErrors, errCodes)
			assert.ElementsMatch(t, tt.expectWarning, warnCodes)
		})
	}
}
