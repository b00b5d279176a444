// demo-seed fills a gatepulse snapshot store with realistic sample data so
// the render modes can be tried without a gateway on the network:
//
//	demo-seed -cache-dir /tmp/gp-demo
//	gatepulse -banner
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"gitlab.com/nubitek/gatepulse/cache"
	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/history"
	"gitlab.com/nubitek/gatepulse/internal/format"
)

// sensorPayload mirrors a typical gateway /sensors response. It is decoded
// through the real snapshot codec so key order is exercised end to end.
const sensorPayload = `{
	"temperature": 24.5,
	"humidity": 60,
	"pressure": 1013.2,
	"rssi": -61,
	"relay_state": "on",
	"firmware": "2.4.1"
}`

func demoDevices(offline int) []gateway.DeviceRecord {
	devices := []gateway.DeviceRecord{
		{Name: "Hall Thermostat", ID: "thermo-01", Protocol: "zigbee", Status: "connected", Description: "Main hall temperature control"},
		{Name: "Door Relay", ID: "relay-02", Protocol: "modbus-tcp", Status: "connected", Description: "Entrance door lock relay"},
		{Name: "CO2 Probe", ID: "co2-03", Protocol: "mqtt", Status: "connected", Description: "Air quality probe"},
		{Name: "Roof Vent", ID: "vent-04", Protocol: "zigbee", Status: "connected", Description: "Roof ventilation motor"},
		{Name: "Basement Pump", ID: "pump-05", Protocol: "modbus-tcp", Status: "connected", Description: "Sump pump controller"},
		{Name: "Yard Camera", ID: "cam-06", Protocol: "rtsp", Status: "connected", Description: "Backyard surveillance"},
	}
	for i := 0; i < offline && i < len(devices); i++ {
		devices[len(devices)-1-i].Status = "unreachable"
	}
	return devices
}

// demoHistory synthesizes a plausible temperature window: a slow wave around
// 24°C sampled every poll interval, newest last.
func demoHistory(samples int, interval time.Duration) []history.Sample {
	out := make([]history.Sample, 0, samples)
	now := time.Now()
	for i := samples - 1; i >= 0; i-- {
		ts := now.Add(-time.Duration(i) * interval)
		value := 24.0 + 1.5*math.Sin(float64(samples-i)/3)
		out = append(out, history.Sample{
			Label: format.ClockLabel(ts),
			Value: math.Round(value*10) / 10,
		})
	}
	return out
}

func main() {
	cacheDir := flag.String("cache-dir", cache.DefaultDir(), "Snapshot store directory to seed")
	samples := flag.Int("samples", history.DefaultCapacity, "Temperature history samples to generate")
	offline := flag.Int("offline", 1, "Devices to mark unreachable")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := cache.NewStore(*cacheDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo-seed: %v\n", err)
		os.Exit(1)
	}

	var snap gateway.SensorSnapshot
	if err := json.Unmarshal([]byte(sensorPayload), &snap); err != nil {
		fmt.Fprintf(os.Stderr, "demo-seed: decode sample sensors: %v\n", err)
		os.Exit(1)
	}
	if err := store.Set(gateway.FeedSensors, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "demo-seed: seed sensors: %v\n", err)
		os.Exit(1)
	}

	devices := demoDevices(*offline)
	if err := store.Set(gateway.FeedDevices, &devices); err != nil {
		fmt.Fprintf(os.Stderr, "demo-seed: seed devices: %v\n", err)
		os.Exit(1)
	}

	window := demoHistory(*samples, 10*time.Second)
	if err := cache.SetTyped(store, history.CacheKey, &window); err != nil {
		fmt.Fprintf(os.Stderr, "demo-seed: seed history: %v\n", err)
		os.Exit(1)
	}

	connected := 0
	for _, d := range devices {
		if d.Connected() {
			connected++
		}
	}

	fmt.Printf("seeded %s\n", *cacheDir)
	fmt.Printf("  %s: %d readings\n", gateway.FeedSensors, snap.Len())
	fmt.Printf("  %s: %d records (%d connected)\n", gateway.FeedDevices, len(devices), connected)
	fmt.Printf("  %s: %d samples\n", history.CacheKey, len(window))
	fmt.Println()
	fmt.Println("try: gatepulse -banner, gatepulse -status or gatepulse -tui")
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Seeds a gatepulse snapshot store with sample gateway data.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Seed the default store\n")
		fmt.Fprintf(os.Stderr, "  %s\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Everything healthy, longer chart\n")
		fmt.Fprintf(os.Stderr, "  %s -offline 0 -samples 20\n", os.Args[0])
	}
}
