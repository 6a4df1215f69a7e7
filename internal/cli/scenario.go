package cli

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/contactsim/pkg/contacts"
	"github.com/mesh-intelligence/contactsim/pkg/simulator"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// Failure kinds accepted by --fail-kind.
const (
	failKindClient = "client"
	failKindServer = "server"
)

// scenarioFlags holds the flags shared by simulate and run.
type scenarioFlags struct {
	count      int
	properties []string
	cutoff     time.Duration
	failAt     int
	failKind   string
	listID     int64
	record     bool
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.count, "count", 3, "number of contacts or lists in the portal")
	cmd.Flags().StringSliceVar(&f.properties, "property", nil, "property names to request on retrieved contacts")
	cmd.Flags().DurationVar(&f.cutoff, "cutoff", 0, "recency cutoff, as a duration before the reference time")
	cmd.Flags().IntVar(&f.failAt, "fail-at", -1, "index of the page or batch call that fails")
	cmd.Flags().StringVar(&f.failKind, "fail-kind", failKindServer, "failure kind: client or server")
	cmd.Flags().Int64Var(&f.listID, "list-id", 1, "contact list the scenario targets")
	cmd.Flags().BoolVar(&f.record, "record", false, "record the calls as a transcript session")
}

// scenarioInput is the portal state and options a scenario works with.
type scenarioInput struct {
	cfg        types.Config
	contacts   []types.Contact
	lists      []types.ContactList
	list       types.ContactList
	properties []types.Property
	members    []types.Contact
	simOpts    []simulator.Option
	fetchOpts  []contacts.RetrievalOption
}

// scenario pairs the calls a portal would make with the client operation
// that makes them.
type scenario struct {
	summary  string
	simulate func(in scenarioInput) simulator.Simulator
	run      func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error)
}

// catalogue holds the property definitions of the simulated portal.
var catalogue = []types.Property{
	{Name: "email", Label: "Email", GroupName: "contactinformation", Type: types.PropertyTypeString},
	{Name: "firstname", Label: "First name", GroupName: "contactinformation", Type: types.PropertyTypeString},
	{Name: "newsletter", Label: "Newsletter", GroupName: "contactinformation", Type: types.PropertyTypeBoolean},
}

var scenarios = map[string]scenario{
	"contacts": {
		summary: "retrieve every contact",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.GetAllContacts(in.cfg, in.contacts, in.properties, in.simOpts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			return collectContacts(c.GetAllContacts(ctx, in.fetchOpts...))
		},
	},
	"recent": {
		summary: "retrieve contacts by last update",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.GetAllContactsByLastUpdate(in.cfg, in.contacts, in.properties, in.simOpts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			return collectContacts(c.GetAllContactsByLastUpdate(ctx, in.fetchOpts...))
		},
	},
	"list-contacts": {
		summary: "retrieve the contacts of a list",
		simulate: func(in scenarioInput) simulator.Simulator {
			opts := append(slices.Clone(in.simOpts), simulator.ForContactList(in.list))
			return simulator.GetAllContacts(in.cfg, in.contacts, in.properties, opts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			return collectContacts(c.GetAllContactsFromList(ctx, in.list.ID, in.fetchOpts...))
		},
	},
	"list-recent": {
		summary: "retrieve the contacts of a list by added date",
		simulate: func(in scenarioInput) simulator.Simulator {
			opts := append(slices.Clone(in.simOpts), simulator.ForContactList(in.list))
			return simulator.GetAllContactsByLastUpdate(in.cfg, in.contacts, in.properties, opts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			return collectContacts(c.GetAllContactsFromListByAddedDate(ctx, in.list.ID, in.fetchOpts...))
		},
	},
	"save": {
		summary: "create or update contacts in batches",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.SaveContacts(in.cfg, in.contacts, in.properties, in.simOpts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			if err := c.SaveContacts(ctx, in.contacts); err != nil {
				return nil, err
			}
			return map[string]any{"saved": len(in.contacts)}, nil
		},
	},
	"add": {
		summary: "add contacts to a list",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.AddContactsToList(in.cfg, in.list, in.contacts, in.members, in.simOpts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			vids, err := c.AddContactsToList(ctx, in.list, in.contacts)
			return membershipView(vids), err
		},
	},
	"remove": {
		summary: "remove contacts from a list",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.RemoveContactsFromList(in.cfg, in.list, in.contacts, in.members, in.simOpts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			vids, err := c.RemoveContactsFromList(ctx, in.list, in.contacts)
			return membershipView(vids), err
		},
	},
	"lists": {
		summary: "retrieve every contact list",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.GetAllContactLists(in.cfg, in.lists, in.simOpts...)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			lists, err := contacts.Collect(c.GetAllContactLists(ctx))
			views := make([]listView, 0, len(lists))
			for _, l := range lists {
				views = append(views, listView{ID: l.ID, Name: l.Name, Dynamic: l.IsDynamic})
			}
			return views, err
		},
	},
	"properties": {
		summary: "retrieve the property definitions",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.GetAllProperties(in.properties)
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			properties, err := c.GetAllProperties(ctx)
			return propertyViews(properties), err
		},
	},
	"groups": {
		summary: "retrieve the property groups",
		simulate: func(in scenarioInput) simulator.Simulator {
			return simulator.GetAllPropertyGroups(propertyGroups(in.properties))
		},
		run: func(ctx context.Context, c *contacts.Client, in scenarioInput) (any, error) {
			groups, err := c.GetAllPropertyGroups(ctx)
			views := make([]groupView, 0, len(groups))
			for _, g := range groups {
				views = append(views, groupView{Name: g.Name, DisplayName: g.DisplayName, Properties: propertyViews(g.Properties)})
			}
			return views, err
		},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func scenarioHelp() string {
	var b strings.Builder
	b.WriteString("Scenarios:\n")
	for _, name := range scenarioNames() {
		fmt.Fprintf(&b, "  %-14s %s\n", name, scenarios[name].summary)
	}
	return b.String()
}

func lookupScenario(name string) (scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return scenario{}, fmt.Errorf("unknown scenario %q (valid: %s)", name, strings.Join(scenarioNames(), ", "))
	}
	return s, nil
}

// input builds the portal state described by the flags, anchored at now.
func (f *scenarioFlags) input(s settings, now time.Time) (scenarioInput, error) {
	if f.count < 0 {
		return scenarioInput{}, fmt.Errorf("--count must not be negative")
	}

	cfg := types.NewConfig(now)
	cfg.PageSize = s.PageSize
	cfg.BatchSize = s.BatchSize

	in := scenarioInput{
		cfg:        cfg,
		list:       types.ContactList{ID: f.listID, Name: fmt.Sprintf("list %d", f.listID)},
		properties: catalogue,
	}
	for i := 1; i <= f.count; i++ {
		c := simulator.MakeContact(int64(i), map[string]any{
			"firstname":  fmt.Sprintf("Contact %d", i),
			"newsletter": i%2 == 1,
		})
		in.contacts = append(in.contacts, c)
		if i%2 == 1 {
			in.members = append(in.members, c)
		}
		in.lists = append(in.lists, types.ContactList{ID: int64(i), Name: fmt.Sprintf("list %d", i)})
	}

	if len(f.properties) > 0 {
		in.simOpts = append(in.simOpts, simulator.WithPropertyNames(f.properties...))
		in.fetchOpts = append(in.fetchOpts, contacts.WithPropertyNames(f.properties...))
	}
	if f.cutoff > 0 {
		cutoff := cfg.MostRecentUpdate.Add(-f.cutoff)
		in.simOpts = append(in.simOpts, simulator.WithCutoff(cutoff))
		in.fetchOpts = append(in.fetchOpts, contacts.WithCutoff(cutoff))
	}
	if f.failAt >= 0 {
		apiErr, err := failureError(f.failKind)
		if err != nil {
			return scenarioInput{}, err
		}
		in.simOpts = append(in.simOpts, simulator.WithFailureAt(f.failAt, apiErr))
	}
	return in, nil
}

func failureError(kind string) (*types.APIError, error) {
	switch kind {
	case failKindClient:
		return types.NewClientError("simulated client error", 400), nil
	case failKindServer:
		return types.NewServerError("simulated server error", 500), nil
	}
	return nil, fmt.Errorf("invalid --fail-kind %q (valid: %s, %s)", kind, failKindClient, failKindServer)
}

// propertyGroups groups definitions by GroupName, in first-seen order.
func propertyGroups(properties []types.Property) []types.PropertyGroup {
	var groups []types.PropertyGroup
	index := map[string]int{}
	for _, p := range properties {
		i, ok := index[p.GroupName]
		if !ok {
			i = len(groups)
			index[p.GroupName] = i
			groups = append(groups, types.PropertyGroup{Name: p.GroupName, DisplayName: p.GroupName})
		}
		groups[i].Properties = append(groups[i].Properties, p)
	}
	return groups
}

func collectContacts(it *contacts.Iterator[types.Contact]) (any, error) {
	var views []contactView
	for it.Next() {
		c := it.Value()
		views = append(views, contactView{
			VID:        c.VID,
			Email:      c.EmailAddress,
			Properties: c.Properties,
			Related:    c.RelatedContactVIDs,
		})
	}
	if views == nil {
		views = []contactView{}
	}
	return views, it.Err()
}
