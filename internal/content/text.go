package content

var (
	AboutMe = `I’m a CS student specializing in cybersecurity and digital forensics. I enjoy breaking down
	complex systems, documenting clearly, and building tools that make investigations faster and more reliable.`

	FocusAreas = []string{
		"DFIR playbooks and memory/email forensics",
		"Network analysis and log triage (ELK/Splunk basics)",
		"Secure scripting and light automation for analysts",
	}

	Availability = `Open to internships, research roles, and part-time security analyst work.`
)

var Languages = []Language{
	{Name: "English", Level: "Native"},
	{Name: "Arabic", Level: "Native"},
	{Name: "French", Level: "Intermediate"},
}

var Skills = []SkillGroup{
	{Name: "Security", Items: []string{"Network Security", "Web App Security", "Threat Modeling", "SOC/Triage", "Incident Response", "OSINT"}},
	{Name: "Digital Forensics", Items: []string{"Autopsy/Sleuth Kit", "Volatility", "FTK Imager", "Magnet Axiom (familiar)", "Wireshark", "Chain of Custody"}},
	{Name: "Crypto/Cracking", Items: []string{"John the Ripper", "hashcat", "xortool", "wordlists/rules"}},
	{Name: "Linux/Systems", Items: []string{"Debian/Kali", "Bash", "tcpdump", "iptables", "systemd"}},
	{Name: "Programming", Items: []string{"Python", "C", "Java", "JavaScript/TypeScript", "SQL"}},
	{Name: "Tools & Platforms", Items: []string{"Git", "Docker", "Burp Suite", "Metasploit", "ELK/Splunk (basic)", "Excel"}},
	{Name: "Certifications", Items: []string{"Microsoft Office Specialist", "Security+ (in progress)"}},
}

var WorkExperience = []Experience{
	{
		Org:   "UTSA Department of Computer Science",
		Role:  "Student Grader",
		Dates: "Sep 2025 – Present",
		Bullets: []string{
			"Evaluate student assignments for accuracy and rubric alignment",
			"Collaborate with faculty to clarify grading criteria and expectations",
			"Maintain precise records to ensure timely score submissions",
		},
	},
	{
		Org:   "University of Texas at San Antonio",
		Role:  "Data Research Analyst",
		Dates: "Apr 2025 – Jul 2025",
		Bullets: []string{
			"Analyzed faculty output, citations, and funding data for strategy",
			"Built scripts and visuals for H-index and funding trend analysis",
			"Tracked DoD/DOE proposals using Excel and Python",
		},
	},
	{
		Org:   "UTSA Academic Support Programs",
		Role:  "Peer Educator (Floor & Athletic Tutor)",
		Dates: "Aug 2024 – Jul 2025",
		Bullets: []string{
			"Tutored 20+ students in Calculus & Programming with strong feedback",
			"Explained complex concepts and study tactics for higher performance",
			"Earned repeat requests from student-athletes for clarity beyond class",
		},
	},
}

var Schooling = Education{
	School: "The University of Texas at San Antonio",
	Degree: "B.S. in Computer Science (Cybersecurity concentration; Minor in Digital Forensics)",
	Grad:   "May 2027",
	GPA:    "3.97",
	Highlights: []string{
		"President's List of Academic Excellence",
		"Courses: Programming I/II, System Programming, Application Programming, Data Structures, Cybercrime Investigation Principles, Discrete Math, Calculus I/II, Computer Organization, Math Foundations for CS",
	},
}

var Awards = []Award{
	{Title: "Ewing Halsell Endowed Foundation Scholarship", URL: "#"},
	{Title: "Dr. Craig Jordan Excellence in Student Success Endowed Award", URL: "#"},
	{Title: "Distinguished Science Judge, Harmony School of Science", URL: "#"},
	{Title: "DELF A2 (French Ministry of Education)", URL: "#"},
}

var Projects = []Project{
	{
		Slug:    "dfir-windows-memory-triage",
		Title:   "DFIR Case Study: Windows Memory Triage",
		Summary: "Acquired live RAM, parsed memory artifacts, and extracted credentials/session traces to reconstruct user activity.",
		Impact:  "Demonstrated volatile evidence handling and rapid triage playbook for small IR teams.",
		Tech:    []string{"Belkasoft Live RAM Capture", "Volatility", "Hex editor"},
		Links:   Links{Repo: "#", Doc: "#", Demo: "#"},
		Media:   []string{"https://images.unsplash.com/photo-1518779578993-ec3579fee39f?w=1200&q=60&auto=format&fit=crop"},
		Badges:  []string{"DFIR", "Memory", "Forensics"},
		Details: []string{
			"Captured volatile memory and validated integrity (SHA-256)",
			"Enumerated processes, network sockets, and credential material",
			"Outlined incident timeline and recommended containment steps",
		},
	},
	{
		Slug:    "crypto-xor-csv-decryptor",
		Title:   "Crypto Cracker: XOR CSV Decryptor",
		Summary: "Wrote Python tooling to guess key sizes via Hamming distance and recover repeating-key XOR on CSV datasets.",
		Impact:  "Recovered plaintext for triage; documented safe handling of sensitive data.",
		Tech:    []string{"Python", "NumPy", "matplotlib (analysis)", "xortool"},
		Links:   Links{Repo: "#", Doc: "#", Demo: "#"},
		Media:   []string{"https://images.unsplash.com/photo-1510915228340-29c85a43dcfe?w=1200&q=60&auto=format&fit=crop"},
		Badges:  []string{"Crypto", "XOR", "Python"},
		Details: []string{
			"Implemented key-length scoring with normalized Hamming distance",
			"Recovered keystream and decrypted multiple samples",
			"Benchmarked against known tools; added rule-based post-processing",
		},
	},
	{
		Slug:    "email-forensics-enron-recon",
		Title:   "Email Forensics: Enron Thread Reconstruction",
		Summary: "Parsed PST archives to CSV, indexed metadata, and surfaced anomalous threads and entities.",
		Impact:  "Illustrated techniques used in corporate fraud investigations.",
		Tech:    []string{"Aid4Mail", "pandas", "entity extraction"},
		Links:   Links{Repo: "#", Doc: "#", Demo: "#"},
		Media:   []string{"https://images.unsplash.com/photo-1556157382-97eda2d62296?w=1200&q=60&auto=format&fit=crop"},
		Badges:  []string{"DFIR", "Email", "Metadata"},
		Details: []string{
			"Converted PST to CSV with consistent field normalization",
			"Built sender-domain and time-window anomaly views",
			"Wrote step-by-step evidentiary handling notes",
		},
	},
}

var Labs = []Lab{
	{
		Title:    "HTB: Blue (Windows EternalBlue)",
		Platform: "Hack The Box",
		Summary:  "Enumerated SMB, identified MS17-010, reproduced exploit in a controlled lab, and documented post-exploitation artifacts.",
		Tags:     []string{"HTB", "Windows", "Exploit"},
		Link:     "#",
	},
	{
		Title:    "THM: Memory Market (Volatility)",
		Platform: "TryHackMe",
		Summary:  "Used Volatility to inspect running processes, dump creds, and answer DFIR questions.",
		Tags:     []string{"THM", "Volatility", "DFIR"},
		Link:     "#",
	},
}

var Testimonials = []Testimonial{
	{
		Quote:  "Cesar is meticulous and clear in his technical writing—students consistently benefited from his explanations.",
		Author: "Faculty Member, UTSA",
	},
	{
		Quote:  "His data tools saved us hours each week and made research trends easy to present to leadership.",
		Author: "Associate Dean's Office, UTSA",
	},
}

// Default returns the catalog built from the tables above.
func Default() *Catalog {
	return &Catalog{
		About:        AboutMe,
		FocusAreas:   FocusAreas,
		Availability: Availability,
		Languages:    Languages,
		Skills:       Skills,
		Experience:   WorkExperience,
		Education:    Schooling,
		Awards:       Awards,
		Projects:     Projects,
		Labs:         Labs,
		Testimonials: Testimonials,
	}
}
