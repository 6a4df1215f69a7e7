package contacts

import (
	"context"

	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

// GetAllProperties returns the portal's property definitions.
func (c *Client) GetAllProperties(ctx context.Context) ([]types.Property, error) {
	var records propertyRecords
	if err := c.get(ctx, wire.PathProperties, nil, &records); err != nil {
		return nil, err
	}
	return records.properties(), nil
}

// CreateProperty creates p and returns the definition the portal stored.
// Returns ErrInvalidName or ErrInvalidPropertyType, without sending a
// request, if p is malformed.
func (c *Client) CreateProperty(ctx context.Context, p types.Property) (types.Property, error) {
	if err := p.Validate(); err != nil {
		return types.Property{}, err
	}
	req := types.Request{
		Method: types.MethodPut,
		Path:   wire.PropertyPath(p.Name),
		Body:   wire.FormatProperty(p),
	}
	var rec propertyRecord
	if err := c.send(ctx, req, &rec); err != nil {
		return types.Property{}, err
	}
	return rec.property(), nil
}

// DeleteProperty deletes the named property.
func (c *Client) DeleteProperty(ctx context.Context, name string) error {
	return c.send(ctx, types.Request{Method: types.MethodDelete, Path: wire.PropertyPath(name)}, nil)
}

// GetAllPropertyGroups returns the portal's property groups with their
// properties.
func (c *Client) GetAllPropertyGroups(ctx context.Context) ([]types.PropertyGroup, error) {
	var records propertyGroupRecords
	if err := c.get(ctx, wire.PathPropertyGroups, nil, &records); err != nil {
		return nil, err
	}
	groups := make([]types.PropertyGroup, 0, len(records))
	for _, rec := range records {
		groups = append(groups, rec.propertyGroup())
	}
	return groups, nil
}

// CreatePropertyGroup creates g and returns it as the portal reports it.
// Returns ErrInvalidName if g has no name.
func (c *Client) CreatePropertyGroup(ctx context.Context, g types.PropertyGroup) (types.PropertyGroup, error) {
	if g.Name == "" {
		return types.PropertyGroup{}, types.ErrInvalidName
	}
	req := types.Request{
		Method: types.MethodPut,
		Path:   wire.PropertyGroupPath(g.Name),
		Body:   wire.FormatPropertyGroup(g),
	}
	var rec propertyGroupRecord
	if err := c.send(ctx, req, &rec); err != nil {
		return types.PropertyGroup{}, err
	}
	return rec.propertyGroup(), nil
}

// DeletePropertyGroup deletes the named property group.
func (c *Client) DeletePropertyGroup(ctx context.Context, name string) error {
	return c.send(ctx, types.Request{Method: types.MethodDelete, Path: wire.PropertyGroupPath(name)}, nil)
}
