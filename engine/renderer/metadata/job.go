package metadata

/** @brief Describes a type of job */
type JobType int

const (
	/** @brief A general job that does not have any specific thread requirements. */
	JOB_TYPE_GENERAL JobType = 0x02
	/** @brief A resource loading job. */
	JOB_TYPE_RESOURCE_LOAD JobType = 0x04
)

/** @brief Job priority, informational for now. */
type JobPriority int

const (
	JOB_PRIORITY_LOW JobPriority = iota
	JOB_PRIORITY_NORMAL
	JOB_PRIORITY_HIGH
)

/** @brief Invoked on a worker when the job starts. Required. */
type JobStart func(params interface{}) (interface{}, error)

/** @brief Invoked on the worker with the result of a successful job. */
type JobOnComplete func(result interface{})

/** @brief Invoked on the worker with the error of a failed job. */
type JobOnFailure func(err error)

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	JobType  JobType
	Priority JobPriority
	/** @brief Data to be passed to the entry point upon execution. */
	InputParams interface{}
	OnStart     JobStart
	OnComplete  JobOnComplete
	OnFailure   JobOnFailure
	/** @brief Always invoked last, whatever the outcome. Optional. */
	OnCompletionCallback func()
}
