package field

import "strings"

// TypeIDForImage buckets a container image reference into a field type.
// Matching is on the final path segment with the tag stripped, so
// "docker.io/bitnami/redis:7.2" classifies the same as "redis".
func TypeIDForImage(image string) string {
	img := strings.ToLower(image)
	if i := strings.Index(img, ":"); i >= 0 {
		img = img[:i]
	}
	if i := strings.LastIndex(img, "/"); i >= 0 {
		img = img[i+1:]
	}

	switch {
	case containsAny(img, "nginx", "traefik", "haproxy", "envoy"):
		return "gateway"
	case strings.Contains(img, "redis"):
		return "cache"
	case containsAny(img, "postgres", "mysql", "mongo", "mariadb", "cockroach", "cassandra", "clickhouse"):
		return "database"
	case containsAny(img, "kafka", "rabbitmq", "nats", "pulsar", "activemq", "redpanda"):
		return "queue"
	case containsAny(img, "prometheus", "grafana", "jaeger", "elasticsearch", "kibana", "fluentd"):
		return "monitoring"
	case containsAny(img, "cert-manager", "certmanager"):
		return "infra"
	}
	return "service"
}

// TypeIDForChart buckets a Helm chart name into a field type.
func TypeIDForChart(chart string) string {
	c := strings.ToLower(chart)
	switch {
	case containsAny(c, "nginx", "traefik", "ingress"):
		return "gateway"
	case strings.Contains(c, "redis"):
		return "cache"
	case containsAny(c, "postgres", "mysql", "mongo", "mariadb"):
		return "database"
	case containsAny(c, "kafka", "rabbitmq", "nats", "redpanda"):
		return "queue"
	case containsAny(c, "prometheus", "grafana", "loki", "kube-prometheus"):
		return "monitoring"
	case containsAny(c, "cert-manager", "vault", "external-secrets"):
		return "infra"
	}
	return "service"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
