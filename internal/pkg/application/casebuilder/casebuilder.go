package casebuilder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/diwise/case-mapping/pkg/caseuco/registry"
	"github.com/diwise/case-mapping/pkg/caseuco/types"
	"github.com/diwise/case-mapping/pkg/caseuco/types/entities"
	"github.com/diwise/case-mapping/pkg/datamodels/drafting"
	"github.com/diwise/case-mapping/pkg/datamodels/investigation"
	"github.com/diwise/case-mapping/pkg/datamodels/uco"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceAttributePrefix string = "case-prefix"
	TraceAttributeIDMode string = "case-id-mode"
	TraceAttributeFacets string = "case-shared-facets"
)

var tracer = otel.Tracer("case-builder")

type CaseBuilder interface {
	Build(ctx context.Context) (*uco.Bundle, error)
	Write(ctx context.Context, bundle *uco.Bundle, w io.Writer) error
}

type caseBuilderApp struct {
	cfg     Config
	builder *entities.Builder

	applications *registry.Synchronized[*entities.DocumentImpl]
	coordinates  *registry.Synchronized[*entities.DocumentImpl]

	applicationFacets registry.Backing[*entities.DocumentImpl]
	coordinateFacets  registry.Backing[*entities.DocumentImpl]

	timestamps func() time.Time
}

func New(ctx context.Context, cfg *Config) (CaseBuilder, error) {
	newID, err := cfg.identifierFunc()
	if err != nil {
		return nil, fmt.Errorf("invalid identifier configuration: %w", err)
	}

	coercer, err := cfg.coercer()
	if err != nil {
		return nil, fmt.Errorf("invalid integer width: %w", err)
	}

	app := &caseBuilderApp{
		cfg:        *cfg,
		builder:    entities.NewBuilder(newID, entities.WithCoercer(coercer)),
		timestamps: timestampSequence(time.Date(2023, 1, 1, 1, 1, 1, 1000, time.UTC), time.Minute+time.Second+time.Microsecond),
	}

	app.applications = registry.NewSynchronized(uco.NewApplicationNames(app.builder, &app.applicationFacets))
	app.coordinates = registry.NewSynchronized(uco.NewCoordinates(app.builder, &app.coordinateFacets))

	logging.GetFromContext(ctx).Debug("case builder created", "prefix", cfg.Prefix.Label, "id_mode", cfg.Identifiers.Mode, "integer_width", cfg.IntegerWidth)

	return app, nil
}

// timestampSequence returns fixed, evenly spaced timestamps so that repeated
// runs produce the same output
func timestampSequence(base time.Time, step time.Duration) func() time.Time {
	count := 0
	return func() time.Time {
		count++
		return base.Add(time.Duration(count) * step)
	}
}

func (app *caseBuilderApp) Build(ctx context.Context) (bundle *uco.Bundle, err error) {
	ctx, span := tracer.Start(ctx, "build-case",
		trace.WithAttributes(attribute.String(TraceAttributePrefix, app.cfg.Prefix.Label)),
		trace.WithAttributes(attribute.String(TraceAttributeIDMode, app.cfg.Identifiers.Mode)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	bundle, err = uco.NewBundle(app.builder, app.cfg.Prefix, entities.Description("An Example Case File"))
	if err != nil {
		return nil, fmt.Errorf("failed to create bundle: %w", err)
	}

	steps := []struct {
		name  string
		build func(context.Context, *uco.Bundle) ([]types.Fragment, error)
	}{
		{"devices", app.devices},
		{"browsing", app.browsing},
		{"locations", app.locations},
		{"social-media", app.socialMedia},
		{"network", app.network},
		{"investigation", app.caseInvestigation},
	}

	for _, step := range steps {
		objects, stepErr := step.build(ctx, bundle)
		if stepErr != nil {
			err = fmt.Errorf("failed to build %s: %w", step.name, stepErr)
			return nil, err
		}

		if err = bundle.AppendToObjects(objects...); err != nil {
			return nil, err
		}

		log.Debug("added objects to case", "step", step.name, "count", len(objects))
	}

	span.SetAttributes(attribute.Int(TraceAttributeFacets, len(app.applicationFacets.Objects)+len(app.coordinateFacets.Objects)))

	log.Info("case built", "id", bundle.ID(),
		"applications", app.applications.Len(),
		"coordinates", app.coordinates.Len(),
	)

	return bundle, nil
}

func (app *caseBuilderApp) Write(ctx context.Context, bundle *uco.Bundle, w io.Writer) (err error) {
	_, span := tracer.Start(ctx, "write-case")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	err = enc.Encode(bundle)
	return err
}

func (app *caseBuilderApp) devices(ctx context.Context, bundle *uco.Bundle) ([]types.Fragment, error) {
	b := app.builder

	nikon, err := uco.NewOrganization(b, "Nikon")
	if err != nil {
		return nil, err
	}

	apple, err := uco.NewOrganization(b, "Apple")
	if err != nil {
		return nil, err
	}

	camera, err := uco.NewDeviceFacet(b, uco.Manufacturer(nikon), uco.Model("D750"))
	if err != nil {
		return nil, err
	}

	deviceCamera, err := uco.NewObservableObject(b, entities.Facets(camera))
	if err != nil {
		return nil, err
	}

	phone, err := uco.NewDeviceFacet(b, uco.DeviceType("iPhone"), uco.Manufacturer(apple), uco.Model("6XS"), uco.SerialNumber("77"))
	if err != nil {
		return nil, err
	}

	annotated, err := investigation.NewInvestigativeAction(b,
		entities.Name("annotated"),
		uco.StartTimeAt(app.timestamps()),
		uco.EndTimeAt(app.timestamps()),
		entities.Facets(phone),
	)
	if err != nil {
		return nil, err
	}

	return []types.Fragment{nikon, deviceCamera, apple, annotated}, nil
}

func (app *caseBuilderApp) browsing(ctx context.Context, bundle *uco.Bundle) ([]types.Fragment, error) {
	objects := []types.Fragment{}

	// the same browser shows up in several places but is described once
	for _, name := range []string{"Safari", "Chrome", "Safari"} {
		facet, err := app.applications.CheckOrCreate(name)
		if err != nil {
			return nil, err
		}

		browser, err := uco.NewObservableObject(app.builder, entities.Facets(facet))
		if err != nil {
			return nil, err
		}

		objects = append(objects, browser)
	}

	url, err := uco.NewURLFacet(app.builder, "www.docker.com/howto")
	if err != nil {
		return nil, err
	}

	urlObject, err := uco.NewObservableObject(app.builder, entities.Facets(url))
	if err != nil {
		return nil, err
	}

	return append(objects, urlObject), nil
}

func (app *caseBuilderApp) locations(ctx context.Context, bundle *uco.Bundle) ([]types.Fragment, error) {
	objects := []types.Fragment{}

	positions := [][2]float64{
		{61.185055, 9.468836},
		{56.47267913, -71.17069244},
		{61.185055, 9.468836},
	}

	for _, p := range positions {
		facet, err := app.coordinates.CheckOrCreate(p[0], p[1])
		if err != nil {
			return nil, err
		}

		location, err := uco.NewLocation(app.builder, entities.Facets(facet))
		if err != nil {
			return nil, err
		}

		objects = append(objects, location)
	}

	address, err := uco.NewSimpleAddressFacet(app.builder, uco.SimpleAddress{
		AddressType: "postal",
		Country:     "Italy",
		Locality:    "Rome",
	})
	if err != nil {
		return nil, err
	}

	office, err := uco.NewLocation(app.builder, entities.Facets(address))
	if err != nil {
		return nil, err
	}

	return append(objects, office), nil
}

func (app *caseBuilderApp) socialMedia(ctx context.Context, bundle *uco.Bundle) ([]types.Fragment, error) {
	facebook, err := app.applications.CheckOrCreate("Facebook")
	if err != nil {
		return nil, err
	}

	socialMediaApp, err := uco.NewObservableObject(app.builder, entities.Facets(facebook))
	if err != nil {
		return nil, err
	}

	url, err := uco.NewURLFacet(app.builder, "https://www.facebook.com/search/top?q=rome is more")
	if err != nil {
		return nil, err
	}

	socialMediaURL, err := uco.NewObservableObject(app.builder, entities.Facets(url))
	if err != nil {
		return nil, err
	}

	body := "Good people exist. We need people like Adrian."
	pageTitle := "Positive thoughts"
	authorIdentifier := "100016939415901"
	authorName := "Adrian"
	activityType := "post"
	reactions, shares, comments := 200, 20, 10

	activity, err := drafting.NewSocialMediaActivityFacet(app.builder, drafting.SocialMediaActivity{
		Body:             &body,
		PageTitle:        &pageTitle,
		AuthorIdentifier: &authorIdentifier,
		AuthorName:       &authorName,
		ActivityType:     &activityType,
		ReactionsCount:   &reactions,
		SharesCount:      &shares,
		CommentsCount:    &comments,
		CreatedTime:      "2024-04-02T17:28:42Z",
		Application:      socialMediaApp,
		URL:              socialMediaURL,
	})
	if err != nil {
		return nil, err
	}

	post, err := uco.NewObservableObject(app.builder, entities.Facets(activity))
	if err != nil {
		return nil, err
	}

	return []types.Fragment{socialMediaApp, socialMediaURL, post}, nil
}

func (app *caseBuilderApp) network(ctx context.Context, bundle *uco.Bundle) ([]types.Fragment, error) {
	changed := true

	port, err := drafting.NewNetworkPort(app.builder, 443, &changed, "open")
	if err != nil {
		return nil, err
	}

	dump, err := drafting.NewDumpFacet(app.builder, map[string]any{
		"state":   "corrupted",
		"notable": true,
	})
	if err != nil {
		return nil, err
	}

	interval, err := drafting.NewTextIntervalFacet(app.builder, 0, 42, nil)
	if err != nil {
		return nil, err
	}

	dumped, err := uco.NewObservableObject(app.builder, entities.Facets(dump, interval))
	if err != nil {
		return nil, err
	}

	return []types.Fragment{port, dumped}, nil
}

func (app *caseBuilderApp) caseInvestigation(ctx context.Context, bundle *uco.Bundle) ([]types.Fragment, error) {
	exiftool, err := uco.NewTool(app.builder, "exiftool", uco.ToolVersion("12.76"), uco.ToolType("metadata extraction"))
	if err != nil {
		return nil, err
	}

	police, err := uco.NewOrganization(app.builder, "Police")
	if err != nil {
		return nil, err
	}

	sdCard, err := uco.NewObservableObject(app.builder, uco.State("seized"))
	if err != nil {
		return nil, err
	}

	record, err := investigation.NewProvenanceRecord(app.builder, "1", sdCard)
	if err != nil {
		return nil, err
	}

	extraction, err := investigation.NewInvestigativeAction(app.builder,
		entities.Name("extraction"),
		uco.StartTimeAt(app.timestamps()),
		uco.EndTimeAt(app.timestamps()),
		uco.ActionPerformer(police),
		uco.ActionInstrument(exiftool),
		uco.ActionObjects(sdCard),
		uco.ActionResults(record),
	)
	if err != nil {
		return nil, err
	}

	crime, err := investigation.NewInvestigation(app.builder,
		entities.Name("Crime A"),
		investigation.InvestigationFocus("Transfer of Illicit Materials"),
		entities.Description("Inquiry into the transfer of illicit materials and the devices used to do so"),
		investigation.CoreObjects([]any{sdCard, extraction}),
	)
	if err != nil {
		return nil, err
	}

	if err := bundle.AppendComments("exhibits were photographed before extraction"); err != nil {
		return nil, err
	}

	return []types.Fragment{exiftool, police, sdCard, record, extraction, crime}, nil
}
