package simulator

import (
	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

// GetAllProperties simulates listing the portal's property definitions.
func GetAllProperties(properties []types.Property) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{
			Request: types.Request{Method: types.MethodGet, Path: wire.PathProperties},
			Outcome: types.Success{Body: propertiesData(properties)},
		}}
	})
}

// CreateProperty simulates creating a property; the portal echoes the
// definition back.
func CreateProperty(p types.Property) Simulator {
	return fromCalls(func() []types.APICall {
		req := createPropertyRequest(p)
		return []types.APICall{{Request: req, Outcome: types.Success{Body: wire.FormatProperty(p)}}}
	})
}

// UnsuccessfulCreateProperty simulates a rejected property creation.
func UnsuccessfulCreateProperty(p types.Property, err *types.APIError) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{Request: createPropertyRequest(p), Outcome: types.Failure{Err: err}}}
	})
}

func createPropertyRequest(p types.Property) types.Request {
	return types.Request{
		Method: types.MethodPut,
		Path:   wire.PropertyPath(p.Name),
		Body:   wire.FormatProperty(p),
	}
}

// DeleteProperty simulates deleting a property.
func DeleteProperty(name string) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{
			Request: types.Request{Method: types.MethodDelete, Path: wire.PropertyPath(name)},
			Outcome: types.Success{},
		}}
	})
}

// GetAllPropertyGroups simulates listing the portal's property groups.
func GetAllPropertyGroups(groups []types.PropertyGroup) Simulator {
	return fromCalls(func() []types.APICall {
		groupsData := make([]any, 0, len(groups))
		for _, g := range groups {
			groupsData = append(groupsData, propertyGroupData(g))
		}
		return []types.APICall{{
			Request: types.Request{Method: types.MethodGet, Path: wire.PathPropertyGroups},
			Outcome: types.Success{Body: groupsData},
		}}
	})
}

// CreatePropertyGroup simulates creating a property group.
func CreatePropertyGroup(g types.PropertyGroup) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{
			Request: createPropertyGroupRequest(g),
			Outcome: types.Success{Body: propertyGroupData(g)},
		}}
	})
}

// UnsuccessfulCreatePropertyGroup simulates a rejected group creation.
func UnsuccessfulCreatePropertyGroup(g types.PropertyGroup, err *types.APIError) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{Request: createPropertyGroupRequest(g), Outcome: types.Failure{Err: err}}}
	})
}

func createPropertyGroupRequest(g types.PropertyGroup) types.Request {
	return types.Request{
		Method: types.MethodPut,
		Path:   wire.PropertyGroupPath(g.Name),
		Body:   wire.FormatPropertyGroup(g),
	}
}

// DeletePropertyGroup simulates deleting a property group.
func DeletePropertyGroup(name string) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{
			Request: types.Request{Method: types.MethodDelete, Path: wire.PropertyGroupPath(name)},
			Outcome: types.Success{},
		}}
	})
}

// propertyGroupData renders a group as the portal returns it. The
// properties key is present only when the group has properties.
func propertyGroupData(g types.PropertyGroup) map[string]any {
	data := map[string]any{
		"name":         g.Name,
		"displayName":  g.DisplayName,
		"displayOrder": stubGroupDisplayOrder,
		"portalId":     stubPortalID,
	}
	if len(g.Properties) > 0 {
		data["properties"] = propertiesData(g.Properties)
	}
	return data
}

func propertiesData(properties []types.Property) []any {
	data := make([]any, 0, len(properties))
	for _, p := range properties {
		data = append(data, wire.FormatProperty(p))
	}
	return data
}
