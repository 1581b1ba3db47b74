// Package sampler produces realistic field values for generate_ocsf_event.
// The builder stamps class_uid, category_uid, type_uid and metadata itself,
// so samples only carry the activity-specific attributes.
package sampler

import (
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

type generator func(f *gofakeit.Faker, now time.Time) map[string]any

// Sampler generates field sets from a seeded faker.
type Sampler struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// New returns a Sampler. A zero seed picks a random one.
func New(seed int64) *Sampler {
	return &Sampler{faker: gofakeit.New(seed), now: time.Now}
}

var generators = map[string]generator{
	"authentication":    authentication,
	"network_activity":  networkActivity,
	"process_activity":  processActivity,
	"file_activity":     fileActivity,
	"dns_activity":      dnsActivity,
	"http_activity":     httpActivity,
	"detection_finding": detectionFinding,
}

// Classes lists the event classes with a tailored generator.
func Classes() []string {
	out := make([]string, 0, len(generators))
	for name := range generators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Sample returns fields for class. Unknown classes get a generic field set.
func (s *Sampler) Sample(class string) map[string]any {
	gen, ok := generators[strings.ToLower(strings.TrimSpace(class))]
	if !ok {
		gen = generic
	}
	return gen(s.faker, s.now())
}

func endpoint(f *gofakeit.Faker) map[string]any {
	return map[string]any{
		"ip":   f.IPv4Address(),
		"port": f.Number(1024, 65535),
	}
}

func user(f *gofakeit.Faker) map[string]any {
	return map[string]any{
		"name": f.Username(),
		"uid":  f.UUID(),
	}
}

func authentication(f *gofakeit.Faker, _ time.Time) map[string]any {
	success := f.Float32Range(0, 1) > 0.15

	fields := map[string]any{
		"activity_id": f.RandomInt([]int{1, 2}),
		"severity_id": 1,
		"status_id":   1,
		"status":      "Success",
		"user": map[string]any{
			"name":  f.Username(),
			"uid":   f.UUID(),
			"email": f.Email(),
		},
		"src_endpoint": map[string]any{
			"ip":       f.IPv4Address(),
			"port":     f.Number(1024, 65535),
			"hostname": f.DomainName(),
		},
		"auth_protocol": f.RandomString([]string{"LDAP", "Kerberos", "NTLM", "OAUTH 2.0", "SAML"}),
	}
	if !success {
		fields["severity_id"] = 3
		fields["status_id"] = 2
		fields["status"] = "Failure"
		fields["status_detail"] = f.RandomString([]string{"Invalid credentials", "Account locked", "Expired password"})
	}
	return fields
}

func networkActivity(f *gofakeit.Faker, _ time.Time) map[string]any {
	dst := endpoint(f)
	dst["port"] = f.RandomInt([]int{22, 80, 443, 445, 3306, 3389, 5432})

	return map[string]any{
		"activity_id":  f.RandomInt([]int{1, 2, 5, 6}),
		"severity_id":  1,
		"src_endpoint": endpoint(f),
		"dst_endpoint": dst,
		"connection_info": map[string]any{
			"protocol_name": f.RandomString([]string{"tcp", "udp", "icmp"}),
			"direction_id":  f.RandomInt([]int{1, 2}),
		},
		"traffic": map[string]any{
			"bytes":   f.Number(0, 1000000),
			"packets": f.Number(1, 10000),
		},
	}
}

func processActivity(f *gofakeit.Faker, _ time.Time) map[string]any {
	name := f.RandomString([]string{"bash", "python3", "curl", "nginx", "sshd", "powershell.exe"})

	return map[string]any{
		"activity_id": 1,
		"severity_id": 1,
		"process": map[string]any{
			"pid":      f.Number(2, 65535),
			"name":     name,
			"cmd_line": name + " " + f.Word(),
			"uid":      f.UUID(),
			"parent_process": map[string]any{
				"pid":  1,
				"name": "systemd",
			},
		},
		"actor": map[string]any{"user": user(f)},
		"device": map[string]any{
			"hostname": f.DomainName(),
			"type_id":  1,
		},
	}
}

func fileActivity(f *gofakeit.Faker, now time.Time) map[string]any {
	return map[string]any{
		"activity_id": f.Number(1, 5),
		"severity_id": 1,
		"file": map[string]any{
			"name":          f.Word() + "." + f.FileExtension(),
			"path":          "/var/lib/" + f.Word(),
			"type_id":       1,
			"size":          f.Number(0, 10000000),
			"modified_time": now.UnixMilli(),
		},
		"actor": map[string]any{"user": user(f)},
		"device": map[string]any{
			"hostname": f.DomainName(),
			"type_id":  1,
		},
	}
}

func dnsActivity(f *gofakeit.Faker, _ time.Time) map[string]any {
	rtype := f.RandomString([]string{"A", "AAAA", "CNAME", "MX", "TXT"})

	return map[string]any{
		"activity_id": 1,
		"severity_id": 1,
		"query": map[string]any{
			"hostname": f.DomainName(),
			"type":     rtype,
			"class":    "IN",
		},
		"answers": []map[string]any{
			{"type": rtype, "rdata": f.IPv4Address(), "ttl": 300},
		},
		"src_endpoint": endpoint(f),
		"rcode":        f.RandomString([]string{"NoError", "NXDomain", "ServFail"}),
	}
}

func httpActivity(f *gofakeit.Faker, _ time.Time) map[string]any {
	code := f.HTTPStatusCodeSimple()
	severity := 1
	switch {
	case code >= 500:
		severity = 3
	case code >= 400:
		severity = 2
	}

	return map[string]any{
		"activity_id": 1,
		"severity_id": severity,
		"http_request": map[string]any{
			"http_method": f.HTTPMethod(),
			"url": map[string]any{
				"hostname": f.DomainName(),
				"path":     "/" + f.Word(),
				"scheme":   "https",
			},
			"user_agent": f.UserAgent(),
		},
		"http_response": map[string]any{
			"code":   code,
			"length": f.Number(0, 100000),
		},
		"src_endpoint": endpoint(f),
	}
}

func detectionFinding(f *gofakeit.Faker, now time.Time) map[string]any {
	type finding struct {
		title    string
		severity int
		tactic   string
	}
	findings := []finding{
		{"Suspicious PowerShell Execution", 4, "Execution"},
		{"Multiple Failed Login Attempts", 3, "Credential Access"},
		{"Unusual Network Traffic Pattern", 3, "Command and Control"},
		{"Potential Data Exfiltration", 4, "Exfiltration"},
		{"Privilege Escalation Attempt", 4, "Privilege Escalation"},
	}
	pick := findings[f.Number(0, len(findings)-1)]

	return map[string]any{
		"activity_id": 1,
		"severity_id": pick.severity,
		"finding_info": map[string]any{
			"title":        pick.title,
			"uid":          f.UUID(),
			"types":        []string{"Threat Detection"},
			"created_time": now.UnixMilli(),
			"attacks": []map[string]any{
				{"tactic": map[string]any{"name": pick.tactic}},
			},
		},
		"resources": []map[string]any{
			{"name": f.DomainName(), "type": "endpoint"},
		},
	}
}

func generic(f *gofakeit.Faker, _ time.Time) map[string]any {
	return map[string]any{
		"activity_id": 1,
		"severity_id": 1,
		"message":     f.Sentence(6),
		"actor":       map[string]any{"user": user(f)},
	}
}
