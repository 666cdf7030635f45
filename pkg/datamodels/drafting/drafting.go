package drafting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/types"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
	"github.com/diwise/case-mapping/pkg/caseuco/types/literals"
)

// SocialMediaActivity describes a post or message on a social platform. Nil
// fields are left out of the facet.
type SocialMediaActivity struct {
	Body              *string
	PageTitle         *string
	AuthorIdentifier  *string
	AuthorName        *string
	ActivityType      *string
	AccountIdentifier *string

	ReactionsCount *int
	SharesCount    *int
	CommentsCount  *int

	CreatedTime any

	Application any
	URL         any
}

//NewSocialMediaActivityFacet creates a new instance of SocialMediaActivityFacet
func NewSocialMediaActivityFacet(b *entities.Builder, activity SocialMediaActivity) (*entities.DocumentImpl, error) {
	return b.New(SocialMediaActivityFacetTypeName,
		entities.Literals(literals.String, map[string]any{
			"uco-observable:body":              activity.Body,
			"uco-observable:pageTitle":         activity.PageTitle,
			"drafting:authorIdentifier":        activity.AuthorIdentifier,
			"drafting:authorName":              activity.AuthorName,
			"drafting:activityType":            activity.ActivityType,
			"uco-observable:accountIdentifier": activity.AccountIdentifier,
		}),
		entities.Literals(literals.NonNegativeInteger, map[string]any{
			"drafting:reactionsCount": activity.ReactionsCount,
			"drafting:sharesCount":    activity.SharesCount,
			"drafting:commentsCount":  activity.CommentsCount,
		}),
		entities.DateTime("uco-observable:observableCreatedTime", activity.CreatedTime),
		entities.Refs(map[string]any{
			"uco-observable:application": activity.Application,
			"uco-observable:url":         activity.URL,
		}),
	)
}

//NewNetworkPort creates a new instance of NetworkPort
func NewNetworkPort(b *entities.Builder, port int, hasChanged *bool, state string) (*entities.DocumentImpl, error) {
	return b.New(NetworkPortTypeName,
		entities.Integer("uco-observable:port", port),
		entities.Boolean("uco-observable:hasChanged", hasChanged),
		entities.Text("uco-observable:state", state),
	)
}

//NewTextIntervalFacet creates a new instance of TextIntervalFacet
func NewTextIntervalFacet(b *entities.Builder, startIndex, endIndex int, machineLearningJob any) (*entities.DocumentImpl, error) {
	if endIndex < startIndex {
		return nil, errors.NewRangeError("drafting:endIndex", fmt.Sprintf("text interval ends (%d) before it starts (%d)", endIndex, startIndex))
	}

	return b.New(TextIntervalFacetTypeName,
		entities.Integer("drafting:startIndex", startIndex),
		entities.Integer("drafting:endIndex", endIndex),
		entities.Ref("drafting:machineLearningJob", machineLearningJob),
	)
}

// NewDumpFacet stores free form key value data that has no ontology terms.
// Entries are written in key order. Absent and blank values are skipped, maps
// become a list of their values and everything else is stored as a string.
func NewDumpFacet(b *entities.Builder, data map[string]any) (*entities.DocumentImpl, error) {
	entries := []types.Fragment{}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		entry, err := dumpEntry(b.Coercer(), k, data[k])
		if err != nil {
			return nil, err
		}
		if entry != nil {
			entries = append(entries, entry)
		}
	}

	results, err := entities.New("", dumpResultsDictionaryTypeName,
		entities.Field("drafting:entry", entries),
	)
	if err != nil {
		return nil, err
	}

	return b.New(DumpFacetTypeName, entities.Field("drafting:dumpResults", results))
}

func dumpEntry(c *literals.Coercer, key string, value any) (types.Fragment, error) {
	if types.IsAbsent(value) {
		return nil, nil
	}

	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}

	if dict, ok := value.(map[string]any); ok {
		if len(dict) == 0 {
			return nil, nil
		}

		dictKeys := make([]string, 0, len(dict))
		for k := range dict {
			dictKeys = append(dictKeys, k)
		}
		sort.Strings(dictKeys)

		values := make([]any, 0, len(dict))
		for _, k := range dictKeys {
			values = append(values, dict[k])
		}

		return entities.New("", dumpResultsEntryTypeName,
			entities.Text("drafting:key", key),
			entities.Field("drafting:dictionaryListValue", values),
		)
	}

	return entities.New("", dumpResultsEntryTypeName,
		entities.Coercer(c),
		entities.Text("drafting:key", key),
		entities.Literal(literals.String, "drafting:stringValue", value),
	)
}
