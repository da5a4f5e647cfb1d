package main

import json "github.com/KevinWang15/go-json5"

func parseArrayFormat(data []byte) ([][2]float64, error) {
	var pairs [][2]float64
	err := json.Unmarshal(data, &pairs)
	return pairs, err
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func validateJsonFileAndFillEvent(jsonTable map[string]interface{}, event *RingOccEvent) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	showInput, ok := getLeafValue(jsonTable, "show_input_bool")
	if !ok {
		event.ShowInput = false // default to false if this field is missing
	} else {
		event.ShowInput, ok = showInput.(bool)
		if !ok {
			msg = "show_input_bool: is not a bool"
			return msg, false
		}
	}

	windowSize, ok := getLeafValue(jsonTable, "window_size_pixels")
	if !ok {
		event.WindowSizePixels = 500 // Default to 500 pixels if this field is missing
	} else {
		wSize, ok := windowSize.(float64)
		if !ok {
			msg = "window_size_pixels: is not a float64"
			return msg, false
		}
		event.WindowSizePixels = int(wSize)
	}

	title, ok := getLeafValue(jsonTable, "title")
	if ok {
		event.Title, ok = title.(string)
		if !ok {
			msg = "title: is not a string"
			return msg, false
		}
	}

	wavelength, ok := getLeafValue(jsonTable, "wavelength_microns")
	if !ok {
		msg = "wavelength_microns: not found"
		return msg, false
	}
	event.WavelengthMicrons, ok = wavelength.(float64)
	if !ok {
		msg = "wavelength_microns: is not a float64"
		return msg, false
	}

	// If a distance in km was given, it is given priority, and we overwrite
	// any value that may also have been given in AU.
	needAdistanceMeasure := true
	distanceKm, ok := getLeafValue(jsonTable, "distance_km")
	if ok {
		event.DistanceKm, ok = distanceKm.(float64)
		if !ok {
			msg = "distance_km: is not a float64"
			return msg, false
		}
		needAdistanceMeasure = false // Now we don't need distance_au
	}

	distanceAU, ok := getLeafValue(jsonTable, "distance_au")
	if !ok {
		if needAdistanceMeasure {
			msg = "distance_au: not found"
			return msg, false
		}
	} else {
		event.DistanceAu, ok = distanceAU.(float64)
		if !ok {
			msg = "distance_au: is not a float64"
			return msg, false
		}
	}

	numPts, ok := getLeafValue(jsonTable, "num_points")
	if !ok {
		msg = "num_points: not found"
		return msg, false
	}
	numberOfPoints, ok := numPts.(float64)
	if !ok {
		msg = "num_points: is not a float64"
		return msg, false
	}
	event.NumPoints = int(numberOfPoints)

	ringWidth, ok := getLeafValue(jsonTable, "ring_width_km")
	if !ok {
		msg = "ring_width_km: not found"
		return msg, false
	}
	event.RingWidthKm, ok = ringWidth.(float64)
	if !ok {
		msg = "ring_width_km: is not a float64"
		return msg, false
	}

	profile, ok := getLeafValue(jsonTable, "profile")
	if !ok {
		msg = "profile: not found"
		return msg, false
	}
	event.ProfileType, ok = profile.(string)
	if !ok {
		msg = "profile: is not a string"
		return msg, false
	}
	switch event.ProfileType {
	case "flat", "center_peaked", "edge_peaked", "table":
	default:
		msg = "profile: must be one of flat, center_peaked, edge_peaked, table"
		return msg, false
	}

	tau, ok := getLeafValue(jsonTable, "tau")
	if !ok {
		event.Tau = 0.1 // Default value
	} else {
		event.Tau, ok = tau.(float64)
		if !ok {
			msg = "tau: is not a float64"
			return msg, false
		}
	}

	profileSteps, ok := getLeafValue(jsonTable, "profile_steps")
	if !ok {
		event.ProfileSteps = 100 // Default value
	} else {
		steps, ok := profileSteps.(float64)
		if !ok {
			msg = "profile_steps: is not a float64"
			return msg, false
		}
		event.ProfileSteps = int(steps)
	}

	filePath, ok := getLeafValue(jsonTable, "path_to_profile_table")
	if ok {
		event.PathToProfileTable, ok = filePath.(string)
		if !ok {
			msg = "path_to_profile_table: is not a string"
			return msg, false
		}
	}
	if event.ProfileType == "table" && event.PathToProfileTable == "" {
		msg = "path_to_profile_table: required when profile is \"table\""
		return msg, false
	}

	velocity, ok := getLeafValue(jsonTable, "event_velocity_km_per_sec")
	if !ok {
		msg = "event_velocity_km_per_sec: not found"
		return msg, false
	}
	event.EventVelocityKmPerSec, ok = velocity.(float64)
	if !ok {
		msg = "event_velocity_km_per_sec: is not a float64"
		return msg, false
	}

	baselinePts, ok := getLeafValue(jsonTable, "baseline_points")
	if !ok {
		event.BaselinePoints = 100 // Default: leading out-of-event window of the reference event
	} else {
		pts, ok := baselinePts.(float64)
		if !ok {
			msg = "baseline_points: is not a float64"
			return msg, false
		}
		event.BaselinePoints = int(pts)
	}

	return msg, true
}
