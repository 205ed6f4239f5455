package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"agronome/config"
	"agronome/database"
	"agronome/pkg/agronomy"
	"agronome/router"

	// Auth + Health
	authCtrlImp "agronome/pkg/auth/controllerImp"
	healthCtrlImp "agronome/pkg/health/controllerImp"

	// Holding
	holdingCtrlImp "agronome/pkg/holding/controllerImp"
	holdingRepoImp "agronome/pkg/holding/repositoryImp"
	holdingSvcImp "agronome/pkg/holding/serviceImp"

	// Records
	climateCtrlImp "agronome/pkg/climatedata/controllerImp"
	climateRepoImp "agronome/pkg/climatedata/repositoryImp"
	inputCtrlImp "agronome/pkg/inputs/controllerImp"
	inputRepoImp "agronome/pkg/inputs/repositoryImp"
	soilCtrlImp "agronome/pkg/soil/controllerImp"
	soilRepoImp "agronome/pkg/soil/repositoryImp"

	// Harvest
	harvestCtrlImp "agronome/pkg/harvest/controllerImp"
	harvestRepoImp "agronome/pkg/harvest/repositoryImp"
	harvestSvcImp "agronome/pkg/harvest/serviceImp"

	// Sensors
	sensorCtrlImp "agronome/pkg/sensor/controllerImp"
	sensorRepoImp "agronome/pkg/sensor/repositoryImp"
	sensorSvcImp "agronome/pkg/sensor/serviceImp"

	// KB
	kbCtrlImp "agronome/pkg/kb/controllerImp"
	kbRepoImp "agronome/pkg/kb/repositoryImp"
	kbServiceImp "agronome/pkg/kb/serviceImp"

	// Recommendations + irrigation
	irrigationCtrlImp "agronome/pkg/irrigation/controllerImp"
	irrigationSvcImp "agronome/pkg/irrigation/serviceImp"
	recCtrlImp "agronome/pkg/recommendation/controllerImp"
	recRepoImp "agronome/pkg/recommendation/repositoryImp"
	recSvcImp "agronome/pkg/recommendation/serviceImp"

	"agronome/pkg/scheduler"
	"agronome/pkg/weather"
)

func loadAgronomy(cfg config.AppConfig) (agronomy.Config, string) {
	var files []string
	for _, f := range []string{cfg.AgronomyYAML, cfg.CropNeedsCSV, cfg.ThresholdsXLSX} {
		if f != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return agronomy.Default(), "defaults"
	}
	ac, err := agronomy.LoadFromFiles(cfg.AgronomyYAML, cfg.CropNeedsCSV, cfg.ThresholdsXLSX)
	if err != nil {
		log.Printf("[cfg] agronomy overrides rejected, using defaults: %v", err)
		return agronomy.Default(), "defaults"
	}
	return ac, strings.Join(files, ",")
}

func main() {
	// 1) Config
	cfg := config.Load()
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		time.Local = loc
	} else {
		log.Printf("[cfg] unknown TZ %q: %v", cfg.Timezone, err)
	}
	agro, source := loadAgronomy(cfg)

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Weather, nil when no key is configured
	var wx weather.Provider
	if cfg.WeatherAPIKey != "" {
		wx = weather.NewClient(cfg.WeatherURL, cfg.WeatherAPIKey, cfg.WeatherRPS)
	} else {
		log.Printf("[weather] OPENWEATHER_API_KEY not set, irrigation advice needs posted weather")
	}

	// 4) Repos
	hRepo := holdingRepoImp.New(db)
	soRepo := soilRepoImp.New(db)
	clRepo := climateRepoImp.New(db)
	inRepo := inputRepoImp.New(db)
	hvRepo := harvestRepoImp.New(db)
	snRepo := sensorRepoImp.New(db)
	kbRepo := kbRepoImp.New(db)
	rcRepo := recRepoImp.New(db)

	// 5) Services
	kbSvc := kbServiceImp.New(kbRepo)
	snSvc := sensorSvcImp.NewSensorService(snRepo, hRepo)
	rcSvc := recSvcImp.NewRecommendationService(recSvcImp.Deps{
		Recs:     rcRepo,
		Holdings: hRepo,
		Soil:     soRepo,
		Climate:  clRepo,
		Inputs:   inRepo,
		Engine:   agronomy.NewEngine(agro),
		Sensors:  snSvc,
		KB:       kbSvc,
	})
	irSvc := irrigationSvcImp.NewIrrigationService(agronomy.NewAdvisor(agro), wx)

	// 6) Scheduler
	var sched *scheduler.Scheduler
	if cfg.RegenCron != "" {
		s, err := scheduler.New(cfg.RegenCron, rcSvc)
		if err != nil {
			log.Printf("[scheduler] disabled: %v", err)
		} else {
			sched = s
			sched.Start()
			defer sched.Stop()
		}
	}

	// 7) Echo + routes
	hCtrl := healthCtrlImp.NewHealthCtrl(db, healthCtrlImp.Info{
		ConfigSource:     source,
		Crops:            len(agro.Crops()),
		WeatherEnabled:   wx != nil,
		SchedulerEnabled: sched != nil,
	})
	e := echo.New()
	e.HideBanner = true
	router.New(e, router.Controllers{
		Auth:           authCtrlImp.NewAuthController(),
		Health:         hCtrl,
		Holding:        holdingCtrlImp.New(holdingSvcImp.NewHoldingService(hRepo)),
		Soil:           soilCtrlImp.New(soRepo),
		Climate:        climateCtrlImp.New(clRepo),
		Inputs:         inputCtrlImp.New(inRepo),
		Harvest:        harvestCtrlImp.New(harvestSvcImp.NewHarvestService(hvRepo, hRepo)),
		Recommendation: recCtrlImp.New(rcSvc),
		Irrigation:     irrigationCtrlImp.New(irSvc),
		Sensor:         sensorCtrlImp.New(snSvc),
		KB:             kbCtrlImp.New(kbSvc, cfg.KBAllowedDomains, cfg.KBMaxBytes),
	}, hRepo, cfg.EnableAuth)

	// 8) Start, stop on SIGINT/SIGTERM
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
