package auth

import (
	"testing"

	"onboarding-service/models"
)

func TestDecide(t *testing.T) {
	manager := Principal{Email: "manager@agency.com", Role: models.RoleManager}
	client := Principal{Email: "client@agency.com", Role: models.RoleClient}

	selfOnly := Policy{OwnerCheckAppliesToManager: true}
	selfOrManager := Policy{}
	managerOnly := Policy{RequiredRole: models.RoleManager}
	clientSelf := Policy{RequiredRole: models.RoleClient}

	tests := []struct {
		name      string
		principal Principal
		owner     string
		policy    Policy
		allowed   bool
	}{
		{"client reads own notes", client, "client@agency.com", selfOnly, true},
		{"client reads another client's notes", client, "other@agency.com", selfOnly, false},
		{"manager reads another client's notes", manager, "client@agency.com", selfOnly, false},
		{"manager reads own notes", manager, "manager@agency.com", selfOnly, true},

		{"client reads own reports", client, "client@agency.com", selfOrManager, true},
		{"client reads another client's reports", client, "other@agency.com", selfOrManager, false},
		{"manager reads any client's reports", manager, "client@agency.com", selfOrManager, true},

		{"manager writes a note", manager, "client@agency.com", managerOnly, true},
		{"client writes a note", client, "client@agency.com", managerOnly, false},

		{"client uploads own media", client, "client@agency.com", clientSelf, true},
		{"client uploads into another folder", client, "other@agency.com", clientSelf, false},
		{"manager uploads client media", manager, "client@agency.com", clientSelf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decide(tt.principal, tt.owner, tt.policy)
			if tt.allowed && err != nil {
				t.Errorf("Expected access, got %v", err)
			}
			if !tt.allowed && err != ErrForbidden {
				t.Errorf("Expected ErrForbidden, got %v", err)
			}
		})
	}
}
