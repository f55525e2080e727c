package models

import (
	"fmt"

	"github.com/samber/lo"
)

// Category is one of the fixed security domains used as the type of a
// security update and as the topic of generated learning content.
type Category string

const (
	CategoryNetwork        Category = "Network Security"
	CategoryApplication    Category = "Application Security"
	CategoryInformation    Category = "Information Security"
	CategoryEndpoint       Category = "Endpoint Security"
	CategoryCloud          Category = "Cloud Security"
	CategoryIAM            Category = "Identity and Access Management (IAM)"
	CategoryOpSec          Category = "Operational Security (OpSec)"
	CategoryMobile         Category = "Mobile Security"
	CategoryIoT            Category = "Internet of Things (IoT) Security"
	CategoryInfrastructure Category = "Critical Infrastructure Security"
	CategoryDisaster       Category = "Disaster Recovery & Business Continuity"
	CategoryCTI            Category = "Cyber Threat Intelligence (CTI)"
	CategoryDFIR           Category = "Digital Forensics & Incident Response (DFIR)"
	CategoryGRC            Category = "Governance, Risk & Compliance (GRC)"
	CategoryPhishing       Category = "Email Phishing"
	CategoryThreats        Category = "Threats & Vulnerabilities"
	CategoryMalware        Category = "Malware & Viruses"
	CategoryAntivirus      Category = "Antivirus & Defense"
	CategoryFraud          Category = "Cyber Fraud"
)

// learningHubSize is how many categories the learning hub offers.
const learningHubSize = 10

var categories = []Category{
	CategoryNetwork,
	CategoryApplication,
	CategoryInformation,
	CategoryEndpoint,
	CategoryCloud,
	CategoryIAM,
	CategoryOpSec,
	CategoryMobile,
	CategoryIoT,
	CategoryInfrastructure,
	CategoryDisaster,
	CategoryCTI,
	CategoryDFIR,
	CategoryGRC,
	CategoryPhishing,
	CategoryThreats,
	CategoryMalware,
	CategoryAntivirus,
	CategoryFraud,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// LearningCategories returns the categories offered by the learning hub.
func LearningCategories() []Category {
	return append([]Category(nil), categories[:learningHubSize]...)
}

// ParseCategory returns the category named raw or an error if it is not
// one of [Categories].
func ParseCategory(raw string) (Category, error) {
	if lo.Contains(categories, Category(raw)) {
		return Category(raw), nil
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

func (c Category) String() string {
	return string(c)
}
