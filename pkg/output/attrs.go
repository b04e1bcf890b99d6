package output

import (
	"fmt"
	"strconv"
	"strings"
)

var attributeNames = map[ElementType][]string{
	Subcatch: {
		"rainfall", "snow_depth", "evap_loss", "infil_loss",
		"runoff_rate", "gw_outflow_rate", "gw_table_elev", "soil_moisture",
	},
	Node: {
		"invert_depth", "hydraulic_head", "ponded_volume",
		"lateral_inflow", "total_inflow", "flooding_losses",
	},
	Link: {
		"flow_rate", "flow_depth", "flow_velocity", "flow_volume", "capacity",
	},
	System: {
		"air_temp", "rainfall", "snow_depth", "evap_infil_loss", "runoff_flow",
		"dry_weather_inflow", "groundwater_inflow", "rdii_inflow", "direct_inflow",
		"total_lateral_inflow", "flood_losses", "outfall_flows", "volume_stored",
		"evap_rate",
	},
}

// AttributeName names attribute ordinal attr of t. Ordinals past the fixed
// attributes of subcatchments, nodes and links are pollutant concentrations
// and are named pollutant_<k>.
func AttributeName(t ElementType, attr int) string {
	names := attributeNames[t]
	if attr >= 0 && attr < len(names) {
		return names[attr]
	}
	if attr >= len(names) && t != System && t != Pollutant {
		return "pollutant_" + strconv.Itoa(attr-len(names))
	}
	return strconv.Itoa(attr)
}

// ParseAttribute accepts an ordinal, a name returned by AttributeName, or
// pollutant_<k>. It does not check the ordinal against a file.
func ParseAttribute(t ElementType, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	names := attributeNames[t]
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "pollutant_"); ok && t != System && t != Pollutant {
		if k, err := strconv.Atoi(rest); err == nil && k >= 0 {
			return len(names) + k, nil
		}
	}
	return 0, fmt.Errorf("unknown %s attribute %q", t, s)
}
