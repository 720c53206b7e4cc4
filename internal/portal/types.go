// Package portal discovers geospatial services from a REST services directory.
package portal

// directoryListing is the JSON shape of a services-directory node
// ({base}?f=json or {base}/{folder}?f=json).
type directoryListing struct {
	CurrentVersion float64      `json:"currentVersion"`
	Folders        []string     `json:"folders"`
	Services       []serviceRef `json:"services"`
}

// serviceRef identifies one service within a directory listing. Name may be
// folder-qualified ("Utilities/WaterMains").
type serviceRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ServiceDetail is the JSON shape of a service endpoint ({serviceURL}?f=json).
// Portals report failures as a 200 response carrying an error member.
type ServiceDetail struct {
	ServiceDescription string         `json:"serviceDescription"`
	Description        string         `json:"description"`
	FullExtent         *ServiceExtent `json:"fullExtent"`
	SpatialReference   *SpatialRef    `json:"spatialReference"`
	Error              *ServiceError  `json:"error"`
}

// ServiceExtent is a service's reported bounding box.
type ServiceExtent struct {
	XMin             float64     `json:"xmin"`
	YMin             float64     `json:"ymin"`
	XMax             float64     `json:"xmax"`
	YMax             float64     `json:"ymax"`
	SpatialReference *SpatialRef `json:"spatialReference"`
}

// SpatialRef identifies a coordinate system by well-known ID.
type SpatialRef struct {
	WKID       int `json:"wkid"`
	LatestWKID int `json:"latestWkid"`
}

// ServiceError is the error member portals embed in otherwise-200 responses.
type ServiceError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
