package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexivanou/geofare/internal/citydata"
	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/geoclient"
	"github.com/alexivanou/geofare/internal/model"
	"go.uber.org/zap"
)

func main() {
	var (
		from     = flag.String("from", "", "Origin city name")
		to       = flag.String("to", "", "Destination city name")
		cab      = flag.String("cab", "sedan", "Cab type id")
		trip     = flag.String("trip", "one_way", "Trip type: one_way or round_trip")
		popular  = flag.Bool("popular", false, "List popular cities only")
		currency = flag.String("currency", "", "Currency label for local quotes (defaults to CURRENCY)")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if *currency == "" {
		*currency = cfg.Fare.Currency
	}

	tripType, err := model.ParseTripType(*trip)
	if err != nil {
		logger.Fatal("Invalid trip type", zap.Error(err))
	}

	ctx := context.Background()
	client := geoclient.NewClient(cfg.Client)
	directory := geoclient.NewCityDirectory(client, cfg.Client, logger)

	cities := directory.FetchCities(ctx, *popular)
	if *from == "" || *to == "" {
		printCities(cities)
		return
	}

	all := directory.FetchCities(ctx, false)
	origin, ok := findCity(all, *from)
	if !ok {
		logger.Fatal("Unknown origin city", zap.String("city", *from))
	}
	destination, ok := findCity(all, *to)
	if !ok {
		logger.Fatal("Unknown destination city", zap.String("city", *to))
	}

	cabType, ok := findCabType(ctx, client, *cab, logger)
	if !ok {
		logger.Fatal("Unknown cab type", zap.String("cab", *cab))
	}

	resolver := geoclient.NewRouteResolver(client, cfg.Client.Timeout)
	calculator := geoclient.NewFareCalculator(client, cfg.Client.Timeout, *currency)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Route\t%s -> %s\n", origin.Name, destination.Name)

	quickQuote := calculator.EstimateBetween(cabType, origin, destination, tripType)
	fmt.Fprintf(w, "Straight-line quote\t%.2f %s\n", quickQuote.Total, quickQuote.Currency)

	info, err := resolver.GetRouteInfo(ctx, origin.Name, destination.Name)
	if err != nil {
		logger.Warn("Route lookup failed", zap.Error(err))
	} else {
		label := "Driving"
		if info.IsEstimated {
			label = "Driving (estimated)"
		}
		fmt.Fprintf(w, "%s\t%.1f km, %.1f h\n", label, info.DrivingDistanceKm, info.DrivingDurationHours)

		distance := info.DrivingDistanceKm
		if tripType == model.TripTypeRoundTrip {
			distance *= 2
		}
		roadQuote := calculator.Estimate(cabType, distance, tripType)
		fmt.Fprintf(w, "Road quote\t%.2f %s\n", roadQuote.Total, roadQuote.Currency)
	}

	fare, err := calculator.CalculateFare(ctx, model.FareCalculationRequest{
		PickupLat:  origin.Latitude,
		PickupLng:  origin.Longitude,
		DropLat:    destination.Latitude,
		DropLng:    destination.Longitude,
		CabType:    cabType.ID,
		TripType:   string(tripType),
		PickupCity: origin.Name,
		DropCity:   destination.Name,
	})
	if err != nil {
		var details []string
		var apiErr *geoclient.APIError
		if errors.As(err, &apiErr) {
			for _, d := range apiErr.Details() {
				details = append(details, d.Field+": "+d.Message)
			}
		}
		logger.Warn("Backend fare failed", zap.Error(err), zap.Strings("details", details))
		return
	}
	fmt.Fprintf(w, "Backend fare\t%.2f %s (base %.2f, distance %.2f, time %.2f, surge x%.2f)\n",
		fare.TotalFare, fare.Currency, fare.BaseFare, fare.DistanceFare, fare.TimeFare, fare.SurgeMultiplier)
}

func printCities(cities []model.City) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tSTATE\tPOPULAR")
	for _, c := range cities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", c.ID, c.Name, c.State, c.IsPopular)
	}
}

func findCity(cities []model.City, name string) (model.City, bool) {
	for _, c := range cities {
		if strings.EqualFold(c.Name, name) || c.ID == name {
			return c, true
		}
	}
	return model.City{}, false
}

// findCabType prefers the published cab types and falls back to the embedded ones
func findCabType(ctx context.Context, client *geoclient.Client, id string, logger *zap.Logger) (model.CabType, bool) {
	cabTypes, err := client.ListCabTypes(ctx)
	if err != nil {
		logger.Warn("Using embedded cab types", zap.Error(err))
		cabTypes = citydata.CabTypes()
	}

	for _, ct := range cabTypes {
		if ct.ID == id {
			return ct, true
		}
	}
	return model.CabType{}, false
}
