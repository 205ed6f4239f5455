package serviceImp

import (
	"errors"
	"strings"
	"time"

	"agronome/entities"
	holdingRepo "agronome/pkg/holding/repository"
	"agronome/pkg/sensor"
	"agronome/pkg/sensor/repository"
	"agronome/pkg/sensor/service"
)

const (
	TypePH           = "ph"
	TypeSoilMoisture = "soil_moisture"
	TypeNitrogen     = "nitrogen"
	TypePhosphorus   = "phosphorus"
	TypePotassium    = "potassium"
)

var soilTypes = []string{TypePH, TypeSoilMoisture, TypeNitrogen, TypePhosphorus, TypePotassium}

type sensorSvc struct {
	r        repository.SensorRepository
	holdings holdingRepo.HoldingRepository
	now      func() time.Time
}

func NewSensorService(r repository.SensorRepository, holdings holdingRepo.HoldingRepository) service.SensorService {
	return &sensorSvc{r: r, holdings: holdings, now: time.Now}
}

func (s *sensorSvc) Register(uid string, req service.RegisterReq) (*entities.Sensor, error) {
	id := strings.TrimSpace(req.SensorID)
	typ := strings.ToLower(strings.TrimSpace(req.Type))
	if id == "" || typ == "" || req.HoldingID == 0 {
		return nil, &service.InvalidError{Msg: "sensor_id, type and holding_id are required"}
	}
	if _, err := s.holdings.FindByID(req.HoldingID, uid); err != nil {
		return nil, err
	}
	if _, err := s.r.FindSensor(id); err == nil {
		return nil, &service.InvalidError{Msg: "sensor_id already registered"}
	} else if !errors.Is(err, sensor.ErrUnknownSensor) {
		return nil, err
	}
	m := &entities.Sensor{
		SensorID: id, Name: req.Name, Type: typ, Description: req.Description,
		HoldingID: req.HoldingID, ParcelID: req.ParcelID,
		Latitude: req.Latitude, Longitude: req.Longitude,
		Disabled: req.Active != nil && !*req.Active,
	}
	if err := s.r.CreateSensor(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *sensorSvc) ownedIDs(uid string) ([]uint, error) {
	hs, err := s.holdings.List(uid)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(hs))
	for _, h := range hs {
		ids = append(ids, h.HoldingID)
	}
	return ids, nil
}

func (s *sensorSvc) List(uid string) ([]entities.Sensor, error) {
	ids, err := s.ownedIDs(uid)
	if err != nil {
		return nil, err
	}
	return s.r.ListSensors(ids)
}

func (s *sensorSvc) Ingest(req service.ReadingReq) (*entities.SensorReading, error) {
	if strings.TrimSpace(req.SensorID) == "" || strings.TrimSpace(req.SensorType) == "" || req.Value == nil {
		return nil, &service.InvalidError{Msg: "sensor_id, sensor_type and value are required"}
	}
	sn, err := s.r.FindSensor(strings.TrimSpace(req.SensorID))
	if err != nil {
		return nil, err
	}
	if sn.Disabled {
		return nil, sensor.ErrInactiveSensor
	}

	at := s.now().UTC()
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		at = req.Timestamp.UTC()
	}
	m := &entities.SensorReading{
		SensorID: sn.SensorID, SensorType: strings.ToLower(strings.TrimSpace(req.SensorType)),
		Value: *req.Value, Unit: req.Unit,
		HoldingID: req.HoldingID, ParcelID: req.ParcelID,
		Latitude: req.Latitude, Longitude: req.Longitude,
		ReadAt: at, BatteryPct: req.BatteryPct, SignalDBm: req.SignalDBm, Metadata: req.Metadata,
	}
	if m.HoldingID == 0 {
		m.HoldingID = sn.HoldingID
	}
	if m.ParcelID == nil {
		m.ParcelID = sn.ParcelID
	}
	if m.Latitude == nil && m.Longitude == nil {
		m.Latitude, m.Longitude = sn.Latitude, sn.Longitude
	}
	if err := s.r.CreateReading(m); err != nil {
		return nil, err
	}
	if err := s.r.Touch(sn.SensorID, at, req.BatteryPct); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *sensorSvc) Recent(uid string, f repository.ReadingFilter) ([]entities.SensorReading, error) {
	if f.HoldingID != 0 {
		if _, err := s.holdings.FindByID(f.HoldingID, uid); err != nil {
			return nil, err
		}
	} else {
		ids, err := s.ownedIDs(uid)
		if err != nil {
			return nil, err
		}
		f.HoldingIDs = ids
	}
	return s.r.Recent(f)
}

func (s *sensorSvc) SoilSnapshot(holdingID uint) (*entities.SoilAnalysis, error) {
	latest, err := s.r.Latest(holdingID, soilTypes)
	if err != nil {
		return nil, err
	}
	if len(latest) == 0 {
		return nil, nil
	}
	a := &entities.SoilAnalysis{HoldingID: holdingID, Observations: "sensor readings"}
	for typ, m := range latest {
		v := m.Value
		switch typ {
		case TypePH:
			a.PH = &v
		case TypeSoilMoisture:
			a.MoisturePct = &v
		case TypeNitrogen:
			a.NitrogenMgKg = &v
		case TypePhosphorus:
			a.PhosphorusMgKg = &v
		case TypePotassium:
			a.PotassiumMgKg = &v
		}
		if m.ReadAt.After(a.SampleDate) {
			a.SampleDate = m.ReadAt
		}
	}
	return a, nil
}
