package resources

// ######################################################
//
//	REQUEST MODELS
//
// ######################################################

// OrganizationRequest is the payload for registering an organization.
type OrganizationRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// URLResourceRequest registers an external URL as a catalog resource.
type URLResourceRequest struct {
	ResourceName  string            `json:"resource_name"`
	ResourceTitle string            `json:"resource_title"`
	OwnerOrg      string            `json:"owner_org"`
	ResourceURL   string            `json:"resource_url"`
	FileType      string            `json:"file_type,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Extras        map[string]string `json:"extras,omitempty"`
	Mapping       map[string]string `json:"mapping,omitempty"`
	Processing    map[string]any    `json:"processing,omitempty"`
}

// S3ResourceRequest registers an S3 object or prefix as a catalog resource.
type S3ResourceRequest struct {
	ResourceName  string            `json:"resource_name"`
	ResourceTitle string            `json:"resource_title"`
	OwnerOrg      string            `json:"owner_org"`
	ResourceS3    string            `json:"resource_s3"`
	Notes         string            `json:"notes,omitempty"`
	Extras        map[string]string `json:"extras,omitempty"`
}

// KafkaTopicRequest registers a Kafka topic as a streaming dataset.
type KafkaTopicRequest struct {
	DatasetName        string            `json:"dataset_name"`
	DatasetTitle       string            `json:"dataset_title"`
	OwnerOrg           string            `json:"owner_org"`
	KafkaTopic         string            `json:"kafka_topic"`
	KafkaHost          string            `json:"kafka_host"`
	KafkaPort          int               `json:"kafka_port,omitempty"`
	DatasetDescription string            `json:"dataset_description,omitempty"`
	Extras             map[string]string `json:"extras,omitempty"`
	Mapping            map[string]string `json:"mapping,omitempty"`
	Processing         map[string]any    `json:"processing,omitempty"`
}

// ServicesOrg is the only organization services may be registered under.
const ServicesOrg = "services"

// ServiceRequest registers a network service. OwnerOrg must be ServicesOrg.
type ServiceRequest struct {
	ServiceName      string            `json:"service_name"`
	ServiceTitle     string            `json:"service_title"`
	OwnerOrg         string            `json:"owner_org"`
	ServiceURL       string            `json:"service_url"`
	ServiceType      string            `json:"service_type,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	Extras           map[string]string `json:"extras,omitempty"`
	HealthCheckURL   string            `json:"health_check_url,omitempty"`
	DocumentationURL string            `json:"documentation_url,omitempty"`
}

// DatasetResource is a resource attached to a dataset at creation time.
type DatasetResource struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
}

// DatasetRequest registers a general dataset.
type DatasetRequest struct {
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	OwnerOrg  string            `json:"owner_org"`
	Notes     string            `json:"notes,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	Groups    []string          `json:"groups,omitempty"`
	LicenseID string            `json:"license_id,omitempty"`
	Version   string            `json:"version,omitempty"`
	Private   *bool             `json:"private,omitempty"`
	Extras    map[string]string `json:"extras,omitempty"`
	Resources []DatasetResource `json:"resources,omitempty"`
}

// AdvancedSearchRequest is the body of POST /search.
type AdvancedSearchRequest struct {
	DatasetName string   `json:"dataset_name,omitempty"`
	ResourceURL string   `json:"resource_url,omitempty"`
	SearchTerm  string   `json:"search_term,omitempty"`
	FilterList  []string `json:"filter_list,omitempty"`
	Server      string   `json:"server"`
}

// BucketRequest creates an S3 bucket. Region is optional.
type BucketRequest struct {
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// ResourcePatch updates a resource by id. Only non-nil fields are sent.
type ResourcePatch struct {
	Name        *string `json:"name,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Format      *string `json:"format,omitempty"`
}

// ResourceSearchQuery filters GET /resources/search.
type ResourceSearchQuery struct {
	Q           string `url:"q,omitempty"`
	Name        string `url:"name,omitempty"`
	URL         string `url:"url,omitempty"`
	Format      string `url:"format,omitempty"`
	Description string `url:"description,omitempty"`
	Limit       int    `url:"limit"`
	Offset      int    `url:"offset"`
	Server      string `url:"server"`
}

// PelicanImportRequest registers a Pelican file as a resource of an existing dataset.
type PelicanImportRequest struct {
	PelicanURL          string  `json:"pelican_url"`
	PackageID           string  `json:"package_id"`
	ResourceName        *string `json:"resource_name,omitempty"`
	ResourceDescription *string `json:"resource_description,omitempty"`
}

// ######################################################
//
//	RESPONSE MODELS
//
// ######################################################

type DatasetOrganization struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type DatasetResourceInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Format string `json:"format"`
}

type DatasetTag struct {
	Name string `json:"name"`
}

// Dataset is the shape returned by dataset searches.
type Dataset struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Title        string                `json:"title"`
	Notes        string                `json:"notes"`
	Organization DatasetOrganization   `json:"organization"`
	Resources    []DatasetResourceInfo `json:"resources"`
	Tags         []DatasetTag          `json:"tags"`
	Extras       any                   `json:"extras,omitempty"`
}

// SystemStatus reports which backing services are up.
type SystemStatus struct {
	CkanIsActiveLocal  bool   `json:"ckan_is_active_local"`
	CkanIsActiveGlobal bool   `json:"ckan_is_active_global"`
	CkanLocalEnabled   bool   `json:"ckan_local_enabled"`
	KeycloakIsActive   bool   `json:"keycloak_is_active"`
	Version            string `json:"version,omitempty"`
}

// SystemMetrics reports host usage of the EP service.
type SystemMetrics struct {
	PublicIP string         `json:"public_ip"`
	CPU      string         `json:"cpu"`
	Memory   string         `json:"memory"`
	Disk     string         `json:"disk"`
	Services map[string]any `json:"services"`
}

// KafkaDetails describes the Kafka connection the service uses.
type KafkaDetails struct {
	KafkaHost       string `json:"kafka_host"`
	KafkaPort       string `json:"kafka_port"`
	KafkaPrefix     string `json:"kafka_prefix"`
	MaxStreams      int    `json:"max_streams"`
	KafkaConnection bool   `json:"kafka_connection"`
}

// UserInfo is the identity behind the current token.
type UserInfo struct {
	Sub               string   `json:"sub"`
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	Name              string   `json:"name"`
	PreferredUsername string   `json:"preferred_username"`
	Roles             []string `json:"roles"`
	Groups            []string `json:"groups"`
}
