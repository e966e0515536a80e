package seatsvc

// NoSeat is the reservation outcome when no qualifying free block or range
// exists. It is a first-class result, not an error: a full row is an
// expected business outcome the caller handles on the common path.
const NoSeat = -1

// RowOccupancy summarizes one row.
type RowOccupancy struct {
	Zone      int `json:"zone"`
	Row       int `json:"row"`
	Occupied  int `json:"occupied"`
	Total     int `json:"total"`
	Available int `json:"available"`
}

// AggregateOccupancy summarizes the whole inventory. It is read without a
// global snapshot and is advisory under concurrent writes.
type AggregateOccupancy struct {
	TotalSeats     int `json:"total_seats"`
	OccupiedSeats  int `json:"occupied_seats"`
	AvailableSeats int `json:"available_seats"`
	ZonesChecked   int `json:"zones_checked"`
	RowsChecked    int `json:"rows_checked"`
}
