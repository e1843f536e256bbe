package model

type Config struct {
	Name           string `envconfig:"NAME" default:"cartridge" toml:"name"`
	ConfigName     string `envconfig:"CONFIG_NAME" default:"" toml:"config_name"`
	ServiceVersion string `envconfig:"SERVICE_VERSION" default:"" toml:"service_version"`
	HashCommit     string `envconfig:"HASH_COMMIT" default:"" toml:"hash_commit"`
	HashRun        string `envconfig:"HASH_RUN" default:"" toml:"hash_run"`

	// Generator
	IdsStrategy     string `envconfig:"IDS_STRATEGY" default:"counter" toml:"ids_strategy" description:"стратегия идентификаторов: counter (воспроизводимая) или random"`
	Assessments     Bool   `envconfig:"ASSESSMENTS" default:"true" toml:"assessments" description:"выделять проверочные ресурсы (lti_advantage.xml)"`
	DefaultCategory string `envconfig:"DEFAULT_CATEGORY" default:"General" toml:"default_category"`

	ArchiveGeneratedOnly Bool `envconfig:"ARCHIVE_GENERATED_ONLY" default:"false" toml:"archive_generated_only" description:"упаковывать только файлы текущей генерации, без остатков прошлых запусков"`

	// Descriptor
	VendorCode        string `envconfig:"VENDOR_CODE" default:"fabric" toml:"vendor_code"`
	VendorName        string `envconfig:"VENDOR_NAME" default:"Fabric" toml:"vendor_name"`
	VendorDescription string `envconfig:"VENDOR_DESCRIPTION" default:"Fabric learning tools" toml:"vendor_description"`
	VendorURL         string `envconfig:"VENDOR_URL" default:"https://fabric.example" toml:"vendor_url"`
	VendorContact     string `envconfig:"VENDOR_CONTACT" default:"support@fabric.example" toml:"vendor_contact"`
	ToolID            string `envconfig:"TOOL_ID" default:"fabric_lti" toml:"tool_id"`
	PrivacyLevel      string `envconfig:"PRIVACY_LEVEL" default:"public" toml:"privacy_level"`
	IconURL           string `envconfig:"ICON_URL" default:"" toml:"icon_url"`

	// HTTP
	PortApp            string   `envconfig:"PORT_APP" default:"8080" toml:"port_app"`
	ReadTimeout        Duration `envconfig:"READ_TIMEOUT" default:"10s" toml:"read_timeout"`
	WriteTimeout       Duration `envconfig:"WRITE_TIMEOUT" default:"30s" toml:"write_timeout"`
	MaxRequestBodySize Int      `envconfig:"MAX_REQUEST_BODY_SIZE" default:"10485760" toml:"max_request_body_size"`
	WorkDir            string   `envconfig:"WORK_DIR" default:"" toml:"work_dir" description:"каталог сборки пакетов (по-умолчанию системный temp)"`

	// Logger
	LogsLevel  string `envconfig:"LOGS_LEVEL" default:"info" toml:"logs_level"`
	LogsOutput string `envconfig:"LOGS_OUTPUT" default:"stdout" toml:"logs_output"`

	// VFS (публикация пакета в s3)
	Publish        Bool     `envconfig:"PUBLISH" default:"false" toml:"publish"`
	VfsEndpoint    string   `envconfig:"VFS_ENDPOINT" default:"http://127.0.0.1:9000" toml:"vfs_endpoint"`
	VfsAccessKeyID string   `envconfig:"VFS_ACCESS_KEY_ID" default:"minioadmin" toml:"vfs_access_key_id"`
	VfsSecretKey   string   `envconfig:"VFS_SECRET_KEY" default:"minioadmin" toml:"vfs_secret_key"`
	VfsRegion      string   `envconfig:"VFS_REGION" default:"" toml:"vfs_region"`
	VfsBucket      string   `envconfig:"VFS_BUCKET" default:"cartridges" toml:"vfs_bucket"`
	VfsPrefix      string   `envconfig:"VFS_PREFIX" default:"" toml:"vfs_prefix"`
	VfsCertCA      string   `envconfig:"VFS_CERT_CA" default:"" toml:"vfs_cert_ca"`
	VfsURLExpiry   Duration `envconfig:"VFS_URL_EXPIRY" default:"24h" toml:"vfs_url_expiry" description:"срок действия ссылки на опубликованный пакет"`
}
