package constants

const (
	AppCatalog        = "catalog"
	AppCatalogService = "catalog-service"
	AppCatalogMigrate = "catalog-migrate"
)
