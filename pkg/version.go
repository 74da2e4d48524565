package almanac

// Version of the almanac application.
const Version = "0.2.0"
