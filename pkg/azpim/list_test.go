package azpim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const eligibleListing = `{
  "value": [
    {
      "id": "/subscriptions/sub-1/providers/Microsoft.Authorization/roleEligibilityScheduleInstances/inst-1",
      "name": "inst-1",
      "properties": {
        "principalId": "group-id",
        "principalType": "Group",
        "roleDefinitionId": "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/def-owner",
        "scope": "/subscriptions/sub-1",
        "memberType": "Group",
        "status": "Provisioned",
        "roleEligibilityScheduleId": "/subscriptions/sub-1/providers/Microsoft.Authorization/roleEligibilitySchedules/sched-1",
        "expandedProperties": {
          "principal": {"id": "group-id", "displayName": "Platform Team", "type": "Group"},
          "roleDefinition": {"id": "def-owner", "displayName": "Owner", "type": "BuiltInRole"},
          "scope": {"id": "/subscriptions/sub-1", "displayName": "Sandbox Subscription", "type": "subscription"}
        }
      }
    },
    {
      "id": "/subscriptions/sub-2/resourceGroups/rg-data/providers/Microsoft.Authorization/roleEligibilityScheduleInstances/inst-2",
      "name": "inst-2",
      "properties": {
        "principalId": "user-id",
        "principalType": "User",
        "roleDefinitionId": "/subscriptions/sub-2/providers/Microsoft.Authorization/roleDefinitions/def-reader",
        "scope": "/subscriptions/sub-2/resourceGroups/rg-data",
        "memberType": "Direct",
        "status": "Provisioned"
      }
    }
  ]
}`

const activeListing = `{
  "value": [
    {
      "id": "/subscriptions/sub-1/providers/Microsoft.Authorization/roleAssignmentScheduleInstances/act-1",
      "properties": {
        "principalId": "user-id",
        "principalType": "User",
        "roleDefinitionId": "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/def-owner",
        "scope": "/subscriptions/sub-1",
        "memberType": "Direct",
        "assignmentType": "Activated",
        "startDateTime": "2026-08-27T08:00:00Z",
        "endDateTime": "2026-08-27T16:00:00Z",
        "expandedProperties": {
          "roleDefinition": {"displayName": "Owner"},
          "scope": {"id": "/subscriptions/sub-1", "displayName": "Sandbox Subscription"}
        }
      }
    },
    {
      "id": "/subscriptions/sub-1/providers/Microsoft.Authorization/roleAssignmentScheduleInstances/act-2",
      "properties": {
        "principalId": "user-id",
        "roleDefinitionId": "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/def-reader",
        "scope": "/subscriptions/sub-1",
        "assignmentType": "Assigned"
      }
    }
  ]
}`

func TestListEligibleRoles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("normalizes expanded and bare records", func(t *testing.T) {
		runner := &fakeRunner{respond: func(args []string) ([]byte, error) {
			require.Equal(t, "eligible", callKind(args))
			return []byte(eligibleListing), nil
		}}

		roles, err := newTestClient(runner).ListEligibleRoles(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)

		// Expanded properties drive the display names.
		require.Equal(t, "Owner", roles[0].RoleName)
		require.Equal(t, "Sandbox Subscription", roles[0].ScopeName)
		require.Equal(t, MemberTypeGroup, roles[0].MemberType)
		require.Equal(t, "group-id", roles[0].PrincipalID)
		require.NotEmpty(t, roles[0].RoleEligibilityScheduleID)

		// Without expanded properties, names fall back to path segments.
		require.Equal(t, "def-reader", roles[1].RoleName)
		require.Equal(t, "rg-data", roles[1].ScopeName)
		require.Equal(t, MemberTypeDirect, roles[1].MemberType)
	})

	t.Run("requests the asTarget-filtered endpoint", func(t *testing.T) {
		runner := &fakeRunner{respond: func(args []string) ([]byte, error) {
			return []byte(`{"value":[]}`), nil
		}}

		_, err := newTestClient(runner).ListEligibleRoles(ctx)
		require.NoError(t, err)

		require.Len(t, runner.calls, 1)
		url := runner.calls[0][4]
		require.Contains(t, url, "roleEligibilityScheduleInstances")
		require.Contains(t, url, "api-version=2020-10-01")
		require.Contains(t, url, "$filter=asTarget()")
	})

	t.Run("returns transport failures", func(t *testing.T) {
		runner := &fakeRunner{respond: func(args []string) ([]byte, error) {
			return nil, &CommandError{Args: args, Err: errors.New("exit status 1")}
		}}

		_, err := newTestClient(runner).ListEligibleRoles(ctx)
		require.Error(t, err)
	})

	t.Run("returns parse failures", func(t *testing.T) {
		runner := &fakeRunner{respond: func(args []string) ([]byte, error) {
			return []byte("not json"), nil
		}}

		_, err := newTestClient(runner).ListEligibleRoles(ctx)
		require.Error(t, err)
	})
}

func TestListActiveRoles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("keeps only activated assignments", func(t *testing.T) {
		runner := &fakeRunner{respond: func(args []string) ([]byte, error) {
			require.Equal(t, "active", callKind(args))
			return []byte(activeListing), nil
		}}

		roles, err := newTestClient(runner).ListActiveRoles(ctx)
		require.NoError(t, err)

		// The permanent "Assigned" entry must be dropped.
		require.Len(t, roles, 1)
		require.Equal(t, "Owner", roles[0].RoleName)
		require.Equal(t, "2026-08-27T08:00:00Z", roles[0].StartDateTime)
		require.Equal(t, "2026-08-27T16:00:00Z", roles[0].EndDateTime)
	})
}
