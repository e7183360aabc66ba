package resolver

import (
	"component-resolver/internal/provider"
)

// Targets maps a provider to the node_id a pattern resolves to there. A
// provider without an entry has no equivalent.
type Targets map[provider.Provider]string

// targets builds Targets in aws, azure, gcp order; "" means no equivalent.
func targets(aws, azure, gcp string) Targets {
	t := Targets{}

	for p, id := range map[provider.Provider]string{provider.AWS: aws, provider.Azure: azure, provider.GCP: gcp} {
		if id != "" {
			t[p] = id
		}
	}

	return t
}

// Hint is a set of disambiguating words and the node each provider maps them to.
type Hint struct {
	Words   []string
	Targets Targets
}

// Pattern describes a generic term and how to narrow it down. Hints are tried
// in order and the first one present in the request wins. Default is used when
// no hint applies.
type Pattern struct {
	Name     string
	Triggers []string
	Hints    []Hint
	Default  Targets
}

var (
	relationalDB = targets("rds", "sql_database", "cloud_sql")
	serverlessFn = targets("lambda", "function_apps", "cloud_functions")
	privateNet   = targets("private_subnet", "subnet", "vpc")
	objectStore  = targets("s3", "blob_storage", "cloud_storage")
	apiGateway   = targets("api_gateway", "api_management", "api_gateway")
	queueing     = targets("sqs", "service_bus", "pubsub")
	orchestrator = targets("eks", "aks", "gke")
	registry     = targets("ecr", "container_registries", "container_registry")
)

// DefaultPatterns is the built-in pattern table. Order matters: the first
// pattern whose trigger matches the node_id is the only one consulted.
var DefaultPatterns = []Pattern{
	{
		Name:     "subnet",
		Triggers: []string{"subnet", "subnetwork"},
		Hints: []Hint{
			{Words: []string{"public", "internet", "dmz"}, Targets: targets("public_subnet", "subnet", "vpc")},
			{Words: []string{"private", "internal", "isolated"}, Targets: privateNet},
		},
		Default: privateNet,
	},
	{
		Name:     "database",
		Triggers: []string{"database", "db", "datastore", "rdbms"},
		Hints: []Hint{
			{Words: []string{"cache", "caching", "redis", "memcached"}, Targets: targets("elasticache", "cache_for_redis", "memorystore")},
			{Words: []string{"warehouse", "olap", "analytics"}, Targets: targets("redshift", "synapse", "bigquery")},
			{Words: []string{"graph"}, Targets: targets("neptune", "cosmos_db", "")},
			{Words: []string{"nosql", "document", "keyvalue", "mongodb"}, Targets: targets("dynamodb", "cosmos_db", "firestore")},
			{Words: []string{"relational", "sql", "postgres", "postgresql", "mysql"}, Targets: relationalDB},
		},
		Default: relationalDB,
	},
	{
		Name:     "function",
		Triggers: []string{"function", "fn", "faas", "serverless"},
		Hints: []Hint{
			{Words: []string{"serverless", "event", "lambda"}, Targets: serverlessFn},
			{Words: []string{"container", "containerized", "docker"}, Targets: targets("ecs", "container_instances", "cloud_run")},
			{Words: []string{"orchestrator", "orchestrated", "kubernetes", "k8s"}, Targets: orchestrator},
		},
		Default: serverlessFn,
	},
	{
		Name:     "container",
		Triggers: []string{"container", "docker"},
		Hints: []Hint{
			{Words: []string{"registry", "image", "repository"}, Targets: registry},
			{Words: []string{"orchestrator", "kubernetes", "k8s", "cluster"}, Targets: orchestrator},
			{Words: []string{"serverless"}, Targets: targets("fargate", "container_instances", "cloud_run")},
		},
		Default: targets("ecs", "container_instances", "cloud_run"),
	},
	{
		Name:     "kubernetes",
		Triggers: []string{"kubernetes", "k8s", "kube"},
		Default:  orchestrator,
	},
	{
		Name:     "load_balancer",
		Triggers: []string{"balancer", "loadbalancer", "lb"},
		Hints: []Hint{
			{Words: []string{"application", "http", "https", "l7"}, Targets: targets("alb", "application_gateway", "load_balancing")},
			{Words: []string{"network", "tcp", "udp", "l4"}, Targets: targets("nlb", "load_balancer", "load_balancing")},
		},
		Default: targets("elb", "load_balancer", "load_balancing"),
	},
	{
		Name:     "gateway",
		Triggers: []string{"gateway", "gw"},
		Hints: []Hint{
			{Words: []string{"nat", "outbound", "egress"}, Targets: targets("nat_gateway", "", "cloud_nat")},
			{Words: []string{"internet", "igw"}, Targets: targets("internet_gateway", "", "")},
			{Words: []string{"api", "rest"}, Targets: apiGateway},
		},
		Default: apiGateway,
	},
	{
		Name:     "storage",
		Triggers: []string{"storage", "bucket", "blob", "objectstore"},
		Hints: []Hint{
			{Words: []string{"file", "nfs", "filesystem", "share"}, Targets: targets("efs", "file_storage", "filestore")},
			{Words: []string{"block", "disk", "volume"}, Targets: targets("ebs", "managed_disks", "persistent_disk")},
			{Words: []string{"archive", "glacier", "cold"}, Targets: targets("s3_glacier", "", "")},
		},
		Default: objectStore,
	},
	{
		Name:     "queue",
		Triggers: []string{"queue", "messaging", "broker"},
		Hints: []Hint{
			{Words: []string{"topic", "pubsub", "notification", "fanout"}, Targets: targets("sns", "event_grid", "pubsub")},
			{Words: []string{"stream", "streaming"}, Targets: targets("kinesis", "event_hubs", "pubsub")},
		},
		Default: queueing,
	},
	{
		Name:     "cache",
		Triggers: []string{"cache", "redis", "memcached"},
		Default:  targets("elasticache", "cache_for_redis", "memorystore"),
	},
	{
		Name:     "dns",
		Triggers: []string{"dns"},
		Default:  targets("route53", "dns_zone", "cloud_dns"),
	},
	{
		Name:     "cdn",
		Triggers: []string{"cdn"},
		Default:  targets("cloudfront", "cdn", "cloud_cdn"),
	},
	{
		Name:     "warehouse",
		Triggers: []string{"warehouse", "datawarehouse"},
		Default:  targets("redshift", "synapse", "bigquery"),
	},
	{
		Name:     "firewall",
		Triggers: []string{"firewall", "waf"},
		Default:  targets("waf", "firewall", "armor"),
	},
	{
		Name:     "secrets",
		Triggers: []string{"secret", "vault"},
		Default:  targets("secrets_manager", "key_vault", "secret_manager"),
	},
	{
		Name:     "vm",
		Triggers: []string{"vm", "server", "instance", "machine"},
		Default:  targets("ec2", "virtual_machine", "compute_engine"),
	},
	{
		Name:     "network",
		Triggers: []string{"network", "vpc", "vnet"},
		Default:  targets("vpc", "vnet", "vpc"),
	},
}
