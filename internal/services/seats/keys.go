package seatsvc

import "strconv"

// Seat keys
//
// Keyspace (one value per row, S bits each):
// - seats:{eventId}:{zoneId}:{rowId}
//
// The mapping is a pure function of the coordinates so any instance resolves
// the same key for the same row across restarts.

func rowKey(eventID, zone, row int) string {
	b := make([]byte, 0, 24)
	b = append(b, "seats:"...)
	b = strconv.AppendInt(b, int64(eventID), 10)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(zone), 10)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(row), 10)
	return string(b)
}

// allRowKeys returns the keys for every row in the inventory, zone-major in
// ascending coordinate order.
func allRowKeys(eventID, zones, rowsPerZone int) []string {
	keys := make([]string, 0, zones*rowsPerZone)
	for zone := 1; zone <= zones; zone++ {
		for row := 1; row <= rowsPerZone; row++ {
			keys = append(keys, rowKey(eventID, zone, row))
		}
	}
	return keys
}
